package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
)

type getCoinParams struct {
	PostID string `json:"postId,omitempty" jsonschema:"id of the tokenized post"`
}

type listCoinsParams struct {
	PublicationID string `json:"publicationId,omitempty" jsonschema:"publication id; auto-discovered when omitted"`
	Limit         int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor        string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
}

type getCoinHoldersParams struct {
	CoinID string `json:"coinId,omitempty" jsonschema:"coin id"`
	Limit  int    `json:"limit,omitempty" jsonschema:"page size, default 20, max 100"`
	Cursor string `json:"cursor,omitempty" jsonschema:"pagination cursor from a previous page"`
}

func (b Builder) registerCoinTools(server *mcp.Server) {
	addTool(b, server, &mcp.Tool{
		Name:        "get_coin",
		Description: "Fetch the coin record of a tokenized post.",
	}, b.getCoin)
	addTool(b, server, &mcp.Tool{
		Name:        "list_coins",
		Description: "List the coins of a publication with cursor pagination.",
	}, b.listCoins)
	addTool(b, server, &mcp.Tool{
		Name:        "get_coin_holders",
		Description: "List the holders of a coin with cursor pagination.",
	}, b.getCoinHolders)
}

func (b Builder) getCoin(ctx context.Context, in getCoinParams) (any, error) {
	if err := requireParams(param{"postId", in.PostID}); err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/posts/" + url.PathEscape(in.PostID) + "/coin",
	})
}

func (b Builder) listCoins(ctx context.Context, in listCoinsParams) (any, error) {
	pubID, err := b.publicationID(ctx, in.PublicationID)
	if err != nil {
		return nil, err
	}

	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/publications/" + url.PathEscape(pubID) + "/coins",
		Query:  listQuery(in.Limit, in.Cursor),
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}

func (b Builder) getCoinHolders(ctx context.Context, in getCoinHoldersParams) (any, error) {
	if err := requireParams(param{"coinId", in.CoinID}); err != nil {
		return nil, err
	}

	data, err := b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/coins/" + url.PathEscape(in.CoinID) + "/holders",
		Query:  listQuery(in.Limit, in.Cursor),
	})
	if err != nil {
		return nil, err
	}
	return listShape(data), nil
}
