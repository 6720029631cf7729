package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
)

type addSubscriberParams struct {
	Email         string `json:"email,omitempty" jsonschema:"subscriber email address"`
	Wallet        string `json:"walletAddress,omitempty" jsonschema:"subscriber wallet address"`
	PublicationID string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
}

type listSubscribersParams struct {
	PublicationID string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
	Limit         int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor        string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
}

type subscriberCountParams struct {
	PublicationID string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
}

type importSubscribersParams struct {
	FilePath      string `json:"filePath,omitempty" jsonschema:"path to a local CSV file of subscribers"`
	PublicationID string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
}

func (b Builder) registerSubscriberTools(server *mcp.Server) {
	addTool(b, server, &mcp.Tool{
		Name:        "add_subscriber",
		Description: "Add a subscriber by email or wallet address.",
	}, b.addSubscriber)
	addTool(b, server, &mcp.Tool{
		Name:        "list_subscribers",
		Description: "List subscribers of a publication with cursor pagination.",
	}, b.listSubscribers)
	addTool(b, server, &mcp.Tool{
		Name:        "get_subscriber_count",
		Description: "Fetch the subscriber count of a publication.",
	}, b.getSubscriberCount)
	addTool(b, server, &mcp.Tool{
		Name:        "import_subscribers",
		Description: "Bulk-import subscribers from a local CSV file.",
	}, b.importSubscribers)
}

func (b Builder) addSubscriber(ctx context.Context, in addSubscriberParams) (any, error) {
	if in.Email == "" && in.Wallet == "" {
		return nil, errors.New("Missing required parameters: email or walletAddress")
	}
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if in.Email != "" {
		body["email"] = in.Email
	}
	if in.Wallet != "" {
		body["walletAddress"] = in.Wallet
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodPost,
		Path:   "/publications/" + url.PathEscape(pubID) + "/subscribers",
		Body:   body,
	})
}

func (b Builder) listSubscribers(ctx context.Context, in listSubscribersParams) (any, error) {
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/" + url.PathEscape(pubID) + "/subscribers",
		Query:  listQuery(in.Limit, in.Cursor),
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}

func (b Builder) getSubscriberCount(ctx context.Context, in subscriberCountParams) (any, error) {
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/" + url.PathEscape(pubID) + "/subscribers/count",
	})
}

// importSubscribers diverges from the JSON path: the CSV is read into memory
// and posted as a multipart form so the transport picks the boundary.
func (b Builder) importSubscribers(ctx context.Context, in importSubscribersParams) (any, error) {
	if err := requireParams(param{"filePath", in.FilePath}); err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read subscriber file: %w", err)
	}

	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(in.FilePath))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method:      http.MethodPost,
		Path:        "/publications/" + url.PathEscape(pubID) + "/subscribers/import",
		RawBody:     &buf,
		ContentType: writer.FormDataContentType(),
	})
}
