package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
)

type getPublicationParams struct {
	Slug string `json:"slug,omitempty" jsonschema:"publication slug"`
}

type getPublicationByDomainParams struct {
	Domain string `json:"domain,omitempty" jsonschema:"custom domain of the publication"`
}

type emptyParams struct{}

func (b Builder) registerPublicationTools(server *mcp.Server) {
	addTool(b, server, &mcp.Tool{
		Name:        "get_publication",
		Description: "Fetch a publication by slug.",
	}, b.getPublication)
	addTool(b, server, &mcp.Tool{
		Name:        "get_publication_by_domain",
		Description: "Fetch a publication by its custom domain.",
	}, b.getPublicationByDomain)
	addTool(b, server, &mcp.Tool{
		Name:        "get_my_publication",
		Description: "Fetch the publication the configured API key belongs to.",
	}, b.getMyPublication)
}

func (b Builder) getPublication(ctx context.Context, in getPublicationParams) (any, error) {
	if err := requireParams(param{"slug", in.Slug}); err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/slug/" + url.PathEscape(in.Slug),
	})
}

func (b Builder) getPublicationByDomain(ctx context.Context, in getPublicationByDomainParams) (any, error) {
	if err := requireParams(param{"domain", in.Domain}); err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/domain/" + url.PathEscape(in.Domain),
	})
}

func (b Builder) getMyPublication(ctx context.Context, _ emptyParams) (any, error) {
	pubID, err := b.Resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/" + url.PathEscape(pubID),
	})
}
