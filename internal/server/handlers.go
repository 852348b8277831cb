package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/id-extract-mcp/internal/extract"
	"github.com/ironsheep/id-extract-mcp/internal/form"
	"github.com/ironsheep/id-extract-mcp/internal/imaging"
	"github.com/ironsheep/id-extract-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_extract_fields").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Arguments that do not match the tool's input schema return code -32602.
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if err := s.validateArgs(params.Name, params.Arguments); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	log := s.log.WithField("tool", params.Name)

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	log = log.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		log.WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Info("tool ok")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Extraction
	case "document_extract_fields":
		return s.handleExtractFields(ctx, args)
	case "document_ocr_text":
		return s.handleOCRText(ctx, args)
	case "document_parse_text":
		return s.handleParseText(args)

	// Inspection
	case "document_preprocess":
		return s.handlePreprocess(args)

	// Output
	case "document_render_form":
		return s.handleRenderForm(args)
	case "document_export_sheet":
		return s.handleExportSheet(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// requireSupported rejects inputs the pipeline cannot read before any OCR
// work starts.
func requireSupported(paths ...string) error {
	for _, p := range paths {
		if !ocr.IsSupported(p) {
			return fmt.Errorf("unsupported file type %q: expected one of %v", filepath.Ext(p), ocr.SupportedExtensions)
		}
	}
	return nil
}

// === Extraction Handlers ===

type extractFieldsArgs struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleExtractFields(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a extractFieldsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requireSupported(a.Paths...); err != nil {
		return nil, err
	}
	return extract.FromFiles(ctx, s.source, a.Paths...)
}

// imageArgs names an input file and, for images, an optional part of it.
type imageArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (a imageArgs) selective() bool {
	return a.Region != "" || (a.Scale != 0 && a.Scale != 1)
}

// loadImage decodes an image input and applies its region and scale.
func (a imageArgs) loadImage() (image.Image, error) {
	if ocr.IsDocument(a.Path) {
		return nil, fmt.Errorf("region and scale apply to images only, got %s", a.Path)
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if !a.selective() {
		return img, nil
	}
	r := imaging.Region{
		X1: img.Bounds().Min.X, Y1: img.Bounds().Min.Y,
		X2: img.Bounds().Max.X, Y2: img.Bounds().Max.Y,
	}
	if a.Region != "" {
		if r, err = imaging.NamedRegion(img.Bounds(), a.Region); err != nil {
			return nil, err
		}
	}
	return imaging.Crop(img, r, a.Scale)
}

type ocrTextResult struct {
	Text string `json:"text"`
}

func (s *Server) handleOCRText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requireSupported(a.Path); err != nil {
		return nil, err
	}

	var text string
	if a.selective() {
		img, err := a.loadImage()
		if err != nil {
			return nil, err
		}
		if text, err = s.source.TextFromImage(ctx, img); err != nil {
			return nil, err
		}
	} else {
		var err error
		if text, err = s.source.TextFromFile(ctx, a.Path); err != nil {
			return nil, err
		}
	}
	return &ocrTextResult{Text: text}, nil
}

type parseTextArgs struct {
	Text string `json:"text"`
}

func (s *Server) handleParseText(args json.RawMessage) (interface{}, error) {
	var a parseTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return extract.Parse(a.Text), nil
}

// === Inspection Handlers ===

func (s *Server) handlePreprocess(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requireSupported(a.Path); err != nil {
		return nil, err
	}
	if ocr.IsDocument(a.Path) {
		return nil, fmt.Errorf("document_preprocess accepts images only, got %s", a.Path)
	}
	img, err := a.loadImage()
	if err != nil {
		return nil, err
	}
	return imaging.Preview(imaging.Binarize(img))
}

// === Output Handlers ===

type renderFormArgs struct {
	Fields     map[string]string `json:"fields"`
	OutputPath string            `json:"output_path"`
}

type writeResult struct {
	OutputPath string `json:"output_path"`
	Bytes      int    `json:"bytes"`
	Rows       int    `json:"rows,omitempty"`
}

func (s *Server) handleRenderForm(args json.RawMessage) (interface{}, error) {
	var a renderFormArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := form.RenderPDF(&buf, a.Fields, s.form); err != nil {
		return nil, err
	}
	return s.writeOutput(a.OutputPath, buf.Bytes(), 0)
}

type exportSheetArgs struct {
	Records    []form.Row `json:"records"`
	OutputPath string     `json:"output_path"`
}

func (s *Server) handleExportSheet(args json.RawMessage) (interface{}, error) {
	var a exportSheetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := form.WriteSheet(&buf, a.Records); err != nil {
		return nil, err
	}
	return s.writeOutput(a.OutputPath, buf.Bytes(), len(a.Records))
}

// writeOutput writes a fully rendered file so a failed render never leaves
// a partial file behind.
func (s *Server) writeOutput(path string, data []byte, rows int) (*writeResult, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Debug("output written")
	return &writeResult{OutputPath: path, Bytes: len(data), Rows: rows}, nil
}
