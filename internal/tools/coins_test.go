package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoinValidation(t *testing.T) {
	b, calls := testBuilder(t, nil)

	_, err := b.getCoin(context.Background(), getCoinParams{})
	require.Error(t, err)
	assert.Equal(t, "Missing required parameters: postId", err.Error())
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetCoinPath(t *testing.T) {
	b, _ := testBuilder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/post_1/coin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"coin_1","symbol":"HW"}`))
	}))

	data, err := b.getCoin(context.Background(), getCoinParams{PostID: "post_1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "coin_1", "symbol": "HW"}, data)
}

func TestListCoinsShape(t *testing.T) {
	b, _ := testBuilder(t, jsonHandler(`{"coins":[{"id":"coin_1"}]}`))

	data, err := b.listCoins(context.Background(), listCoinsParams{})
	require.NoError(t, err)
	shaped := data.(map[string]any)
	assert.Equal(t, []any{map[string]any{"id": "coin_1"}}, shaped["items"])
}

func TestGetCoinHolders(t *testing.T) {
	b, calls := testBuilder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/coin_1/holders", r.URL.Path)
		assert.Equal(t, "c9", r.URL.Query().Get("cursor"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"holders":[{"wallet":"0xabc"}],"pagination":{"hasMore":false}}`))
	}))

	_, err := b.getCoinHolders(context.Background(), getCoinHoldersParams{})
	require.Error(t, err)
	assert.Equal(t, "Missing required parameters: coinId", err.Error())
	assert.Equal(t, int32(0), calls.Load())

	data, err := b.getCoinHolders(context.Background(), getCoinHoldersParams{CoinID: "coin_1", Cursor: "c9"})
	require.NoError(t, err)
	shaped := data.(map[string]any)
	assert.Equal(t, []any{map[string]any{"wallet": "0xabc"}}, shaped["items"])
	assert.Equal(t, map[string]any{"hasMore": false}, shaped["pagination"])
}
