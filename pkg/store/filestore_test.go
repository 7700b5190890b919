package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), zap.NewNop())
}

func TestLoad_SeedsFromBundledFileOnFirstAccess(t *testing.T) {
	s := newTestStore(t)

	var furnishers []map[string]any
	require.NoError(t, s.Load("catalogue/furnishers.json", &furnishers))
	require.NotEmpty(t, furnishers)
	assert.Equal(t, "Equinox Credit Bureau", furnishers[0]["name"])

	// The seed was materialized on disk.
	_, err := os.Stat(s.Path("catalogue/furnishers.json"))
	require.NoError(t, err)
}

func TestLoad_SeedsEmptyArrayWhenNoBundledSeed(t *testing.T) {
	s := newTestStore(t)

	var forms []map[string]any
	require.NoError(t, s.Load("forms/forms.json", &forms))
	assert.Empty(t, forms)

	data, err := os.ReadFile(s.Path("forms/forms.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	s := newTestStore(t)

	in := []map[string]string{{"id": "category-1", "name": "Financial"}}
	require.NoError(t, s.Save("catalogue/categories.json", in))

	var out []map[string]string
	require.NoError(t, s.Load("catalogue/categories.json", &out))
	assert.Equal(t, in, out)
}

func TestLoad_MalformedDocumentFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Path("catalogue"), 0o755))
	require.NoError(t, os.WriteFile(s.Path("catalogue/categories.json"), []byte("{not json"), 0o644))

	var out []map[string]string
	err := s.Load("catalogue/categories.json", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestReseed_OverwritesEditedDocument(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save("catalogue/categories.json", []map[string]string{}))
	require.NoError(t, s.Reseed("catalogue/categories.json"))

	var categories []map[string]any
	require.NoError(t, s.Load("catalogue/categories.json", &categories))
	assert.Len(t, categories, 3)
}
