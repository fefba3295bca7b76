package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MarshalsInOrder(t *testing.T) {
	data, err := json.Marshal(Default())
	require.NoError(t, err)

	body := string(data)
	popular := strings.Index(body, "Popular")
	crypto := strings.Index(body, "Crypto")
	consumer := strings.Index(body, "Consumer")
	require.True(t, popular >= 0 && crypto >= 0 && consumer >= 0)
	assert.Less(t, popular, crypto)
	assert.Less(t, crypto, consumer)

	var decoded map[string][]map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 6)
	assert.Equal(t, "BTC-USD", decoded["💰 Crypto"][0]["ticker"])
	assert.Equal(t, "Bitcoin", decoded["💰 Crypto"][0]["name"])
}

func TestDefault_Lookup(t *testing.T) {
	s, ok := Default().Lookup("NVDA")
	require.True(t, ok)
	assert.Equal(t, "NVIDIA", s.Name)

	_, ok = Default().Lookup("NOPE")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cat)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: Indices
  stocks:
    - {ticker: "^GSPC", name: "S&P 500"}
- name: Empty
`), 0o644))

	cat, err = Load(path)
	require.NoError(t, err)
	require.Len(t, cat, 2)
	assert.Equal(t, "^GSPC", cat[0].Stocks[0].Ticker)

	data, err := json.Marshal(cat)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Indices":[{"ticker":"^GSPC","name":"S&P 500"}],"Empty":[]}`, string(data))
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- stocks: []\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
