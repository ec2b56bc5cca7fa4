package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWearMap_PreservesKeyOrder(t *testing.T) {
	// Keys deliberately not in lexical order.
	raw := `{"Minimal Wear":"mw-url","Battle-Scarred":"bs-url","Factory New":"fn-url"}`

	var m WearMap
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, 3, m.Len())

	wear, url, ok := m.First()
	require.True(t, ok)
	assert.Equal(t, "Minimal Wear", wear)
	assert.Equal(t, "mw-url", url)
}

func TestWearMap_Get(t *testing.T) {
	var m WearMap
	require.NoError(t, json.Unmarshal([]byte(`{"Field-Tested":"ft-url"}`), &m))

	url, ok := m.Get("Field-Tested")
	assert.True(t, ok)
	assert.Equal(t, "ft-url", url)

	_, ok = m.Get("Factory New")
	assert.False(t, ok)
}

func TestWearMap_FirstOnEmptyMap(t *testing.T) {
	var m WearMap
	require.NoError(t, json.Unmarshal([]byte(`{}`), &m))

	_, _, ok := m.First()
	assert.False(t, ok)
}

func TestWearMap_MarshalRoundTrip(t *testing.T) {
	raw := `{"Minimal Wear":"mw-url","Factory New":"fn-url"}`

	var m WearMap
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	// Byte-for-byte equality proves the order survived, not just the content.
	assert.Equal(t, raw, string(out))
}

func TestWearMap_RejectsNonObject(t *testing.T) {
	var m WearMap
	assert.Error(t, json.Unmarshal([]byte(`["Factory New"]`), &m))
}
