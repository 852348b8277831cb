package server

import "github.com/ironsheep/id-extract-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// fieldsSchema describes a FieldRecord. Every key is optional so partially
// filled records can be rendered or exported.
func fieldsSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"name":      map[string]interface{}{"type": "string"},
			"dob":       map[string]interface{}{"type": "string"},
			"gender":    map[string]interface{}{"type": "string"},
			"address":   map[string]interface{}{"type": "string"},
			"id_number": map[string]interface{}{"type": "string"},
		},
		"additionalProperties": map[string]interface{}{"type": "string"},
	}
}

func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional part of an image to use, e.g. top-half for the front of a two-sided scan. Images only.",
		"enum":        imaging.RegionNames,
	}
}

func scaleSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":             "number",
		"description":      "Optional resize factor applied after the region is cut out (e.g., 2.0 to double size). Images only. Default 1.0",
		"exclusiveMinimum": 0,
		"maximum":          8,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Extraction
		{
			Name:        "document_extract_fields",
			Description: "Run OCR over one or more identity document files (PDF, PNG, JPG) and extract name, date of birth, gender, address and ID number. Text from all files is merged before parsing, so pass the front and back of one card together.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"description": "Absolute paths to the document files, in reading order",
						"items":       map[string]interface{}{"type": "string", "minLength": 1},
						"minItems":    1,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "document_ocr_text",
			Description: "Return the raw OCR text of a single document file after pre-processing. PDFs are recognized page by page. For images, region and scale restrict OCR to part of the scan, such as one side of a two-sided copy.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the document file",
						"minLength":   1,
					},
					"region": regionSchema(),
					"scale":  scaleSchema(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_parse_text",
			Description: "Extract identity fields from text that was already recognized. No OCR is performed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Raw OCR text, lines separated by newlines",
					},
				},
				"required": []string{"text"},
			},
		},

		// Inspection
		{
			Name:        "document_preprocess",
			Description: "Return the binarized image that OCR sees for an image file, as base64-encoded PNG. Use this to judge why a field was missed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
						"minLength":   1,
					},
					"region": regionSchema(),
					"scale":  scaleSchema(),
				},
				"required": []string{"path"},
			},
		},

		// Output
		{
			Name:        "document_render_form",
			Description: "Render a pre-filled A4 application form as PDF from extracted (and possibly corrected) fields.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fields": fieldsSchema("Field values keyed by name, dob, gender, address, id_number"),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the PDF file to write",
						"minLength":   1,
					},
				},
				"required": []string{"fields", "output_path"},
			},
		},
		{
			Name:        "document_export_sheet",
			Description: "Write a batch of extractions to an XLSX workbook, one row per document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"records": map[string]interface{}{
						"type":        "array",
						"description": "Extractions to export",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"source": map[string]interface{}{"type": "string"},
								"fields": fieldsSchema("Extracted fields"),
							},
							"required": []string{"fields"},
						},
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the XLSX file to write",
						"minLength":   1,
					},
				},
				"required": []string{"records", "output_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
