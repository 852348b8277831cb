package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileSchemas compiles the input schema of every tool, keyed by name.
func compileSchemas(tools []Tool) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	urls := make(map[string]string, len(tools))
	for _, tool := range tools {
		b, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", tool.Name, err)
		}
		url := tool.Name + ".json"
		if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", tool.Name, err)
		}
		urls[tool.Name] = url
	}

	schemas := make(map[string]*jsonschema.Schema, len(tools))
	for name, url := range urls {
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		schemas[name] = schema
	}
	return schemas, nil
}

// validateArgs checks raw tool arguments against the tool's input schema.
// Missing arguments are validated as an empty object. Unknown tools pass;
// dispatch reports them.
func (s *Server) validateArgs(name string, args json.RawMessage) error {
	schema, ok := s.schemas[name]
	if !ok {
		return nil
	}
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}
	var v interface{}
	if err := json.Unmarshal(args, &v); err != nil {
		return fmt.Errorf("unmarshal arguments: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("arguments do not match schema: %w", err)
	}
	return nil
}
