package repos

import (
	"context"

	"audiotech/internal/domain"
)

const KeyProducts = "audiotech_products"

// ProductRepo reads and writes the catalog list, newest first.
type ProductRepo struct{ store Store }

func NewProductRepo(s Store) *ProductRepo { return &ProductRepo{store: s} }

// List returns the stored catalog. ok is false when it was never written.
func (r *ProductRepo) List(ctx context.Context) (products []domain.Product, ok bool, err error) {
	ok, err = GetJSON(ctx, r.store, KeyProducts, &products)
	return products, ok, err
}

func (r *ProductRepo) Save(ctx context.Context, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return PutJSON(ctx, r.store, KeyProducts, products)
}
