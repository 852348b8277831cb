// Package server implements the MCP (Model Context Protocol) server for
// identity document field extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes OCR and field
// extraction through the MCP protocol, so an assistant can turn scanned
// identity cards into structured fields and pre-filled forms.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Extraction:
//   - document_extract_fields: OCR one or more files and extract fields
//   - document_ocr_text: Raw OCR text of one file
//   - document_parse_text: Extract fields from already recognized text
//
// Inspection:
//   - document_preprocess: The binarized image OCR sees
//
// Output:
//   - document_render_form: Pre-filled application form as PDF
//   - document_export_sheet: Batch of extractions as XLSX
//
// Only PDF, PNG and JPEG inputs are accepted. Other files are rejected
// before any OCR work starts.
//
// # Error Handling
//
// Tool arguments are validated against the tool's input schema before
// dispatch. Errors are returned as JSON-RPC error responses with:
//   - code: -32602 (arguments do not match the schema), -32000 (tool
//     execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(pipeline, server.Options{Version: version})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
