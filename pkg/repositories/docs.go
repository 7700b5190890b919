package repositories

import "github.com/copa-network/copa-console/pkg/store"

// Document names under the assets directory. Each is a whole JSON array
// rewritten in full on every mutation.
const (
	FurnishersDoc = "catalogue/furnishers.json"
	DataTypesDoc  = "catalogue/data-types.json"
	AttributesDoc = "catalogue/attributes.json"
	CategoriesDoc = "catalogue/categories.json"
	VocabularyDoc = "vocabulary/data-types.json"
	FormsDoc      = "forms/forms.json"
	OffersDoc     = "forms/credential-offers.json"
)

// SeedDocs are the documents restored by POST /api/admin/reseed.
var SeedDocs = []string{FurnishersDoc, DataTypesDoc, AttributesDoc, CategoriesDoc, VocabularyDoc}

// loadDoc reads a whole document into a typed slice. Callers hold the
// store lock.
func loadDoc[T any](fs *store.FileStore, doc string) ([]*T, error) {
	var items []*T
	if err := fs.Load(doc, &items); err != nil {
		return nil, err
	}
	return items, nil
}
