package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/audit"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/protocol"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/security"
)

// Builder constructs the MCP server with the Paragraph tool catalogue.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
	// Client executes Paragraph API requests.
	Client *paragraph.Client
	// Resolver resolves the publication identity.
	Resolver *paragraph.Resolver
}

// Build creates an MCP server and registers every tool.
func (b Builder) Build(name, version string) (*mcp.Server, error) {
	if b.Client == nil {
		return nil, errors.New("client is required")
	}
	if b.Resolver == nil {
		return nil, errors.New("resolver is required")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	b.registerPostTools(server)
	b.registerPublicationTools(server)
	b.registerSubscriberTools(server)
	b.registerCoinTools(server)
	b.registerUserTools(server)

	return server, nil
}

// addTool registers one tool whose outcome is always delivered as an
// envelope. Handler failures never surface as MCP protocol errors.
func addTool[In any](b Builder, server *mcp.Server, tool *mcp.Tool, fn func(context.Context, In) (any, error)) {
	mcp.AddTool(server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, protocol.Envelope, error) {
		env := b.run(ctx, tool.Name, argsMap(in), func(ctx context.Context) (any, error) {
			return fn(ctx, in)
		})
		return nil, env, nil
	})
}

// run wraps one tool invocation: log the call with redacted arguments, audit
// it, and reduce the outcome to the envelope.
func (b Builder) run(ctx context.Context, name string, args map[string]any, fn func(context.Context) (any, error)) protocol.Envelope {
	requestID := uuid.NewString()

	if b.Logger != nil {
		b.Logger.Info("tool call", "tool", name, "request_id", requestID, "args", security.RedactArguments(args))
	}
	if b.Audit != nil {
		b.Audit.Record(ctx, audit.Event{Type: "tool_call", Tool: name, RequestID: requestID})
	}

	data, err := fn(ctx)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Warn("tool failed", "tool", name, "request_id", requestID, "error", err)
		}
		if b.Audit != nil {
			b.Audit.Record(ctx, audit.Event{Type: "tool_error", Tool: name, RequestID: requestID, Error: err.Error()})
		}
		return protocol.Fail(err)
	}

	if b.Audit != nil {
		b.Audit.Record(ctx, audit.Event{Type: "tool_ok", Tool: name, RequestID: requestID})
	}
	return protocol.Ok(data)
}

// publicationID returns the explicit id when given, resolving one otherwise.
func (b Builder) publicationID(ctx context.Context, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}
	return b.Resolver.Resolve(ctx)
}

// argsMap flattens a param struct into the map shape the redactor and logger
// expect.
func argsMap(in any) map[string]any {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// param names one required tool parameter for validation.
type param struct {
	name  string
	value any
}

// requireParams checks every required parameter and reports all missing ones
// in declaration order. No network call happens after a failure here.
func requireParams(params ...param) error {
	var missing []string
	for _, p := range params {
		if err := validation.Validate(p.value, validation.Required); err != nil {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("Missing required parameters: %s", strings.Join(missing, ", "))
	}
	return nil
}

// listQuery builds the shared pagination query. The default page size is 20,
// capped at 100; cursor is forwarded only when provided.
func listQuery(limit int, cursor string) url.Values {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	return query
}

// listKeys are the upstream array names list endpoints are known to use.
var listKeys = []string{"items", "posts", "subscribers", "coins", "holders", "users"}

// listShape normalizes a list response to {items, pagination} regardless of
// which array name or pagination block the upstream chose to include.
func listShape(data any) map[string]any {
	out := map[string]any{
		"items":      []any{},
		"pagination": map[string]any{},
	}
	switch typed := data.(type) {
	case []any:
		out["items"] = typed
	case map[string]any:
		for _, key := range listKeys {
			if arr, ok := typed[key].([]any); ok {
				out["items"] = arr
				break
			}
		}
		if pagination, ok := typed["pagination"].(map[string]any); ok {
			out["pagination"] = pagination
		}
	}
	return out
}
