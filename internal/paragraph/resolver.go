package paragraph

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// discoveryHint tells the operator how to get unstuck when auto-discovery
// cannot find a publication.
const discoveryHint = "set PARAGRAPH_PUBLICATION_ID explicitly or make sure the publication has at least one published post"

// Resolver resolves the publication identity once per process. The API key
// is scoped to a single publication, so when no identifier is configured the
// resolver derives one from the public feed: the first feed item embeds the
// publication, whose slug (or custom domain) leads to the full record.
type Resolver struct {
	mu     sync.Mutex
	client *Client
	logger *slog.Logger

	id   string
	slug string
}

// NewResolver builds a Resolver, optionally seeded with a pre-known
// publication id and slug from configuration.
func NewResolver(client *Client, id, slug string, logger *slog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger, id: id, slug: slug}
}

// Resolve returns the publication id, discovering and caching it on first
// use. The lock is held across discovery so concurrent first callers share
// one pair of upstream calls.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.id != "" {
		return r.id, nil
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(1))

	var feed FeedPage
	if err := r.client.DoInto(ctx, Request{Method: http.MethodGet, Path: "/feed", Query: query}, &feed); err != nil {
		return "", fmt.Errorf("could not auto-discover a publication (%w): %s", err, discoveryHint)
	}
	if len(feed.Items) == 0 || feed.Items[0].Publication == nil {
		return "", fmt.Errorf("could not auto-discover a publication from an empty feed: %s", discoveryHint)
	}

	embedded := feed.Items[0].Publication
	path := ""
	switch {
	case embedded.Slug != "":
		path = "/publications/slug/" + url.PathEscape(embedded.Slug)
	case embedded.CustomDomain != "":
		path = "/publications/domain/" + url.PathEscape(embedded.CustomDomain)
	default:
		return "", fmt.Errorf("could not auto-discover a publication: feed item has no slug or domain: %s", discoveryHint)
	}

	var pub Publication
	if err := r.client.DoInto(ctx, Request{Method: http.MethodGet, Path: path}, &pub); err != nil {
		return "", fmt.Errorf("could not auto-discover a publication (%w): %s", err, discoveryHint)
	}
	if pub.ID == "" {
		return "", fmt.Errorf("could not auto-discover a publication: record has no id: %s", discoveryHint)
	}

	r.id = pub.ID
	if pub.Slug != "" {
		r.slug = pub.Slug
	}
	if r.logger != nil {
		r.logger.Info("publication discovered", "publication_id", r.id, "slug", r.slug)
	}
	return r.id, nil
}

// Slug returns the cached publication slug, empty when unknown.
func (r *Resolver) Slug() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slug
}
