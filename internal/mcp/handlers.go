package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/ops"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{cfg: cfg}
}

// Request types for each tool

// QueryRequest represents the arguments for vcard_query.
type QueryRequest struct {
	Files       []string    `json:"files"`
	Include     vcard.Terms `json:"include,omitempty"`
	Required    vcard.Terms `json:"required,omitempty"`
	Exclude     vcard.Terms `json:"exclude,omitempty"`
	SearchNames []string    `json:"search_names,omitempty"`
	Names       []string    `json:"names,omitempty"`
	NameFile    string      `json:"name_file,omitempty"`
	IncludeText bool        `json:"include_text,omitempty"`
}

// CountRequest represents the arguments for vcard_count.
type CountRequest struct {
	Files []string `json:"files,omitempty"`
}

// DeleteRequest represents the arguments for vcard_delete.
type DeleteRequest struct {
	Path     string   `json:"path"`
	Names    []string `json:"names,omitempty"`
	NameFile string   `json:"name_file,omitempty"`
	All      bool     `json:"all,omitempty"`
	Keep     []string `json:"keep,omitempty"`
	Out      string   `json:"out,omitempty"`
}

// DiffRequest represents the arguments for vcard_diff.
type DiffRequest struct {
	A           string   `json:"a"`
	B           string   `json:"b"`
	Files       []string `json:"files"`
	IncludeText bool     `json:"include_text,omitempty"`
}

// Response types

// QueryResponse is the JSON result of vcard_query.
type QueryResponse struct {
	*ops.QueryOutput
	Contacts []ops.Contact `json:"contacts"`
}

// DiffResponse is the JSON result of vcard_diff.
type DiffResponse struct {
	*ops.DiffOutput
	Contacts []ops.Contact `json:"contacts"`
}

// HandleQuery handles the vcard_query tool call.
func (h *Handlers) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Query(h.cfg, ops.QueryInput{
		Files:       input.Files,
		Include:     input.Include,
		Required:    input.Required,
		Exclude:     input.Exclude,
		SearchNames: input.SearchNames,
		Names:       input.Names,
		NameFile:    input.NameFile,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(QueryResponse{
		QueryOutput: result,
		Contacts:    ops.Contacts(result.Cards, input.IncludeText),
	})
}

// HandleCount handles the vcard_count tool call.
func (h *Handlers) HandleCount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CountRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CountCategories(h.cfg, ops.CountInput{Files: input.Files})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the vcard_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.cfg, ops.DeleteInput{
		Path:     input.Path,
		Names:    input.Names,
		NameFile: input.NameFile,
		All:      input.All,
		Keep:     input.Keep,
		Out:      input.Out,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDiff handles the vcard_diff tool call.
func (h *Handlers) HandleDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DiffRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Diff(h.cfg, ops.DiffInput{
		A:     input.A,
		B:     input.B,
		Files: input.Files,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(DiffResponse{
		DiffOutput: result,
		Contacts:   ops.Contacts(result.Cards, input.IncludeText),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error messages are replaced so file system details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	errorObj := map[string]any{
		"code":    string(errors.ErrInternal),
		"message": "an internal error occurred",
		"status":  500,
	}

	var vErr *errors.VcardError
	if stderrors.As(err, &vErr) && vErr.Code != errors.ErrInternal {
		errorObj["code"] = string(vErr.Code)
		errorObj["message"] = vErr.Message
		errorObj["status"] = vErr.Status
		if vErr.Details != nil {
			errorObj["details"] = vErr.Details
		}
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
