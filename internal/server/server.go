// Package server exposes the dispatcher over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"errors"

	"photobot/internal/photos"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "photobot"
	serverVersion = "0.1.0"
)

// New builds an MCP server with one tool per registry descriptor. Handlers
// decode the raw argument bag and delegate to the dispatcher, which owns
// validation and error envelopes.
func New(dispatcher *photos.Dispatcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, desc := range dispatcher.Descriptors() {
		server.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: inputSchema(desc),
		}, handler(dispatcher, desc.Name))
	}
	return server
}

func handler(dispatcher *photos.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := photos.Args{}
		if req != nil && req.Params != nil {
			// Raw handlers receive arguments as undecoded JSON.
			if raw := req.Params.Arguments; len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return &mcp.CallToolResult{
						Content: []mcp.Content{&mcp.TextContent{Text: "Error: invalid arguments: " + err.Error()}},
						IsError: true,
					}, nil
				}
			}
		}
		return dispatcher.Dispatch(ctx, name, args), nil
	}
}

// inputSchema renders a descriptor's parameter list as a JSON schema.
func inputSchema(desc photos.Descriptor) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(desc.Params))
	var required []string
	for _, p := range desc.Params {
		properties[p.Name] = &jsonschema.Schema{Type: p.Type, Description: p.Description}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Run serves MCP on stdio until the context is cancelled. Cancellation is a
// clean shutdown, not an error.
func Run(ctx context.Context, server *mcp.Server) error {
	err := server.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
