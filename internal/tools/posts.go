package tools

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
)

type createPostParams struct {
	Title          string `json:"title,omitempty" jsonschema:"post title"`
	Markdown       string `json:"markdown,omitempty" jsonschema:"post body in markdown"`
	Subtitle       string `json:"subtitle,omitempty" jsonschema:"optional subtitle"`
	Slug           string `json:"slug,omitempty" jsonschema:"optional URL slug"`
	PublicationID  string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
	SendNewsletter bool   `json:"sendNewsletter,omitempty" jsonschema:"also send the post as a newsletter"`
}

type updatePostParams struct {
	PostID   string `json:"postId,omitempty" jsonschema:"id of the post to update"`
	Title    string `json:"title,omitempty" jsonschema:"new title"`
	Markdown string `json:"markdown,omitempty" jsonschema:"new markdown body"`
	Subtitle string `json:"subtitle,omitempty" jsonschema:"new subtitle"`
	Slug     string `json:"slug,omitempty" jsonschema:"new URL slug"`
}

type getPostParams struct {
	PostID         string `json:"postId,omitempty" jsonschema:"post id"`
	IncludeContent bool   `json:"includeContent,omitempty" jsonschema:"include the markdown body"`
}

type getPostBySlugParams struct {
	PublicationSlug string `json:"publicationSlug,omitempty" jsonschema:"publication slug"`
	PostSlug        string `json:"postSlug,omitempty" jsonschema:"post slug"`
	IncludeContent  bool   `json:"includeContent,omitempty" jsonschema:"include the markdown body"`
}

type listPostsParams struct {
	PublicationID  string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
	Limit          int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor         string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
	Status         string `json:"status,omitempty" jsonschema:"filter by status (draft or published)"`
	IncludeContent bool   `json:"includeContent,omitempty" jsonschema:"include markdown bodies"`
}

type getPostsByTagParams struct {
	Tag    string `json:"tag,omitempty" jsonschema:"tag to filter by"`
	Limit  int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
}

type getFeedParams struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
}

func (b Builder) registerPostTools(server *mcp.Server) {
	addTool(b, server, &mcp.Tool{
		Name:        "create_post",
		Description: "Create a post on the publication. Fields like slug and url may be absent until the platform finishes processing.",
	}, b.createPost)
	addTool(b, server, &mcp.Tool{
		Name:        "update_post",
		Description: "Update the title, markdown, subtitle, or slug of an existing post.",
	}, b.updatePost)
	addTool(b, server, &mcp.Tool{
		Name:        "get_post",
		Description: "Fetch a single post by id.",
	}, b.getPost)
	addTool(b, server, &mcp.Tool{
		Name:        "get_post_by_slug",
		Description: "Fetch a single post by publication slug and post slug.",
	}, b.getPostBySlug)
	addTool(b, server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List posts of a publication with cursor pagination.",
	}, b.listPosts)
	addTool(b, server, &mcp.Tool{
		Name:        "get_posts_by_tag",
		Description: "List posts carrying a tag.",
	}, b.getPostsByTag)
	addTool(b, server, &mcp.Tool{
		Name:        "get_feed",
		Description: "Fetch the curated public feed.",
	}, b.getFeed)
}

func (b Builder) createPost(ctx context.Context, in createPostParams) (any, error) {
	if err := requireParams(param{"title", in.Title}, param{"markdown", in.Markdown}); err != nil {
		return nil, err
	}
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"title":         in.Title,
		"markdown":      in.Markdown,
		"publicationId": pubID,
	}
	if in.Subtitle != "" {
		body["subtitle"] = in.Subtitle
	}
	if in.Slug != "" {
		body["slug"] = in.Slug
	}
	if in.SendNewsletter {
		body["sendNewsletter"] = true
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodPost,
		Path:   "/posts",
		Body:   body,
	})
}

func (b Builder) updatePost(ctx context.Context, in updatePostParams) (any, error) {
	if err := requireParams(param{"postId", in.PostID}); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if in.Title != "" {
		body["title"] = in.Title
	}
	if in.Markdown != "" {
		body["markdown"] = in.Markdown
	}
	if in.Subtitle != "" {
		body["subtitle"] = in.Subtitle
	}
	if in.Slug != "" {
		body["slug"] = in.Slug
	}
	if len(body) == 0 {
		return nil, errors.New("Nothing to update: provide at least one of title, markdown, subtitle, slug")
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodPatch,
		Path:   "/posts/" + url.PathEscape(in.PostID),
		Body:   body,
	})
}

func (b Builder) getPost(ctx context.Context, in getPostParams) (any, error) {
	if err := requireParams(param{"postId", in.PostID}); err != nil {
		return nil, err
	}

	query := url.Values{}
	if in.IncludeContent {
		query.Set("includeContent", "true")
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/posts/" + url.PathEscape(in.PostID),
		Query:  query,
	})
}

func (b Builder) getPostBySlug(ctx context.Context, in getPostBySlugParams) (any, error) {
	if err := requireParams(
		param{"publicationSlug", in.PublicationSlug},
		param{"postSlug", in.PostSlug},
	); err != nil {
		return nil, err
	}

	query := url.Values{}
	if in.IncludeContent {
		query.Set("includeContent", "true")
	}

	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/slug/" + url.PathEscape(in.PublicationSlug) + "/posts/slug/" + url.PathEscape(in.PostSlug),
		Query:  query,
	})
}

func (b Builder) listPosts(ctx context.Context, in listPostsParams) (any, error) {
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	query := listQuery(in.Limit, in.Cursor)
	if in.Status != "" {
		query.Set("status", in.Status)
	}
	if in.IncludeContent {
		query.Set("includeContent", "true")
	}

	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/" + url.PathEscape(pubID) + "/posts",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}

func (b Builder) getPostsByTag(ctx context.Context, in getPostsByTagParams) (any, error) {
	if err := requireParams(param{"tag", in.Tag}); err != nil {
		return nil, err
	}

	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/posts/tag/" + url.PathEscape(in.Tag),
		Query:  listQuery(in.Limit, in.Cursor),
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}

func (b Builder) getFeed(ctx context.Context, in getFeedParams) (any, error) {
	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/feed",
		Query:  listQuery(in.Limit, in.Cursor),
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}
