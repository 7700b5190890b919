package repositories

import (
	"context"
	"fmt"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

// OfferRepository provides data access for credential offers.
type OfferRepository interface {
	List(ctx context.Context) ([]*models.CredentialOffer, error)
	Get(ctx context.Context, id string) (*models.CredentialOffer, error)
	Create(ctx context.Context, o *models.CredentialOffer) error
	Delete(ctx context.Context, id string) error
}

type offerRepository struct {
	fs *store.FileStore
}

// NewOfferRepository creates an OfferRepository over the given store.
func NewOfferRepository(fs *store.FileStore) OfferRepository {
	return &offerRepository{fs: fs}
}

var _ OfferRepository = (*offerRepository)(nil)

func (r *offerRepository) List(ctx context.Context) ([]*models.CredentialOffer, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.CredentialOffer](r.fs, OffersDoc)
}

func (r *offerRepository) Get(ctx context.Context, id string) (*models.CredentialOffer, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	offers, err := loadDoc[models.CredentialOffer](r.fs, OffersDoc)
	if err != nil {
		return nil, err
	}
	for _, o := range offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *offerRepository) Create(ctx context.Context, o *models.CredentialOffer) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	offers, err := loadDoc[models.CredentialOffer](r.fs, OffersDoc)
	if err != nil {
		return err
	}
	for _, existing := range offers {
		if existing.ID == o.ID {
			return fmt.Errorf("credential offer %s: %w", o.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(OffersDoc, append(offers, o))
}

func (r *offerRepository) Delete(ctx context.Context, id string) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	offers, err := loadDoc[models.CredentialOffer](r.fs, OffersDoc)
	if err != nil {
		return err
	}
	kept := offers[:0]
	found := false
	for _, o := range offers {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	return r.fs.Save(OffersDoc, kept)
}
