package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubscriberRequiresEmailOrWallet(t *testing.T) {
	b, calls := testBuilder(t, nil)

	_, err := b.addSubscriber(context.Background(), addSubscriberParams{})
	require.Error(t, err)
	assert.Equal(t, "Missing required parameters: email or walletAddress", err.Error())
	assert.Equal(t, int32(0), calls.Load())
}

func TestAddSubscriberByEmail(t *testing.T) {
	var got map[string]any
	b, _ := testBuilder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/publications/pub_1/subscribers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sub_1","email":"a@b.c"}`))
	}))

	data, err := b.addSubscriber(context.Background(), addSubscriberParams{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got["email"])
	assert.NotContains(t, got, "walletAddress")
	assert.Equal(t, map[string]any{"id": "sub_1", "email": "a@b.c"}, data)
}

func TestListSubscribersShape(t *testing.T) {
	b, _ := testBuilder(t, jsonHandler(`{"subscribers":[{"id":"sub_1"}],"pagination":{"cursor":"c2","hasMore":true}}`))

	data, err := b.listSubscribers(context.Background(), listSubscribersParams{Limit: 50})
	require.NoError(t, err)
	shaped := data.(map[string]any)
	assert.Equal(t, []any{map[string]any{"id": "sub_1"}}, shaped["items"])
	assert.Equal(t, map[string]any{"cursor": "c2", "hasMore": true}, shaped["pagination"])
}

func TestGetSubscriberCount(t *testing.T) {
	b, _ := testBuilder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/publications/pub_1/subscribers/count", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":42}`))
	}))

	data, err := b.getSubscriberCount(context.Background(), subscriberCountParams{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(42)}, data)
}

func TestImportSubscribersMultipart(t *testing.T) {
	csv := "email\na@b.c\nd@e.f\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "subs.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	b, _ := testBuilder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/publications/pub_1/subscribers/import", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "subs.csv", header.Filename)
		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, csv, string(contents))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imported":2}`))
	}))

	data, err := b.importSubscribers(context.Background(), importSubscribersParams{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"imported": float64(2)}, data)
}

func TestImportSubscribersValidation(t *testing.T) {
	b, calls := testBuilder(t, nil)

	_, err := b.importSubscribers(context.Background(), importSubscribersParams{})
	require.Error(t, err)
	assert.Equal(t, "Missing required parameters: filePath", err.Error())

	_, err = b.importSubscribers(context.Background(), importSubscribersParams{FilePath: "/nonexistent/subs.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read subscriber file")
	assert.Equal(t, int32(0), calls.Load())
}
