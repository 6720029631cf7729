package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkJSON(t *testing.T) {
	raw, err := json.Marshal(Ok(map[string]any{"id": "post_1"}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, map[string]any{"id": "post_1"}, decoded["data"])
	assert.Nil(t, decoded["error"])
}

func TestFailJSON(t *testing.T) {
	raw, err := json.Marshal(Fail(errors.New("not found")))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Nil(t, decoded["data"])
	assert.Equal(t, "not found", decoded["error"])
}

func TestOkNilDataGetsMarker(t *testing.T) {
	env := Ok(nil)
	assert.True(t, env.Success)
	assert.Equal(t, EmptyResult(), env.Data)
	assert.Nil(t, env.Error)
}

func TestFailNilError(t *testing.T) {
	env := Fail(nil)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.NotEmpty(t, *env.Error)
}
