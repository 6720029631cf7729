package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
)

type getUserParams struct {
	UserID string `json:"userId,omitempty" jsonschema:"user id"`
}

type getUserByWalletParams struct {
	WalletAddress string `json:"walletAddress,omitempty" jsonschema:"wallet address"`
}

func (b Builder) registerUserTools(server *mcp.Server) {
	addTool(b, server, &mcp.Tool{
		Name:        "check_connection",
		Description: "Verify the configured API key by fetching the authenticated user.",
	}, b.checkConnection)
	addTool(b, server, &mcp.Tool{
		Name:        "get_user",
		Description: "Fetch a user by id.",
	}, b.getUser)
	addTool(b, server, &mcp.Tool{
		Name:        "get_user_by_wallet",
		Description: "Fetch a user by wallet address.",
	}, b.getUserByWallet)
}

func (b Builder) checkConnection(ctx context.Context, _ emptyParams) (any, error) {
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/users/me",
	})
}

func (b Builder) getUser(ctx context.Context, in getUserParams) (any, error) {
	if err := requireParams(param{"userId", in.UserID}); err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/users/" + url.PathEscape(in.UserID),
	})
}

func (b Builder) getUserByWallet(ctx context.Context, in getUserByWalletParams) (any, error) {
	if err := requireParams(param{"walletAddress", in.WalletAddress}); err != nil {
		return nil, err
	}
	return b.Client.Do(ctx, paragraph.Request{
		Method: http.MethodGet,
		Path:   "/users/wallet/" + url.PathEscape(in.WalletAddress),
	})
}
