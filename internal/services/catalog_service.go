package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"audiotech/internal/domain"
	applog "audiotech/internal/log"
	"audiotech/internal/metrics"
	"audiotech/internal/repos"
	"audiotech/internal/validate"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = validate.ErrInvalidProduct
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Latency Latency

	now    func() time.Time
	loads  singleflight.Group
	mu     sync.Mutex // serializes read-modify-write of the product list
	lastID int64
}

func NewCatalogService(prods *repos.ProductRepo, lat Latency) *CatalogService {
	return &CatalogService{Prods: prods, Latency: lat, now: time.Now}
}

// GetProducts returns the stored catalog, seeding the default one on first use.
func (s *CatalogService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	defer observe("get_products")()
	pause(s.Latency.Op)
	return s.products(ctx)
}

func (s *CatalogService) products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.loads.Do(repos.KeyProducts, func() (any, error) {
		// held across list-or-seed so a concurrent write is never overwritten by the seed
		s.mu.Lock()
		defer s.mu.Unlock()
		list, ok, err := s.Prods.List(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return list, nil
		}
		seed := DefaultProducts()
		if err := s.Prods.Save(ctx, seed); err != nil {
			return nil, err
		}
		metrics.CatalogChanges.WithLabelValues("seed").Inc()
		applog.Info(nil, "catalog.seed", map[string]any{"count": len(seed)})
		return seed, nil
	})
	if err != nil {
		return nil, err
	}
	// callers sharing a flight must not share the backing array
	return slices.Clone(v.([]domain.Product)), nil
}

// AddProduct assigns a fresh time-derived id and stores p ahead of the existing products.
func (s *CatalogService) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	defer observe("add_product")()
	pause(s.Latency.Op)

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok, err := s.Prods.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		current = DefaultProducts()
	}
	p.ID = s.nextID()
	if p.Features == nil {
		p.Features = []string{}
	}
	if err := s.Prods.Save(ctx, append([]domain.Product{p}, current...)); err != nil {
		return domain.Product{}, err
	}
	metrics.CatalogChanges.WithLabelValues("add").Inc()
	return p, nil
}

// DeleteProduct drops every product with id. An unknown id is not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	defer observe("delete_product")()
	pause(s.Latency.Op)

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok, err := s.Prods.List(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		current = DefaultProducts()
	}
	kept := slices.DeleteFunc(current, func(p domain.Product) bool { return p.ID == id })
	if err := s.Prods.Save(ctx, kept); err != nil {
		return false, err
	}
	metrics.CatalogChanges.WithLabelValues("delete").Inc()
	return true, nil
}

// Find looks a product up by id; the featured product is always found.
func (s *CatalogService) Find(ctx context.Context, id int64) (domain.Product, error) {
	list, err := s.products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	if f := Featured(); f.ID == id {
		return f, nil
	}
	return domain.Product{}, ErrProductNotFound
}

// Search matches q case-insensitively against name, category and description.
func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	list, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return list, nil
	}
	out := []domain.Product{}
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// NewProduct is the admin add-product form.
type NewProduct struct {
	Name        string
	Category    string
	Price       float64
	Image       string
	Description string
}

const (
	defaultCategory = "Headphones"
	defaultImage    = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=2070&auto=format&fit=crop"
)

func (n NewProduct) Validate() error {
	if strings.TrimSpace(n.Name) == "" || !(n.Price > 0) {
		return ErrInvalidProduct
	}
	return nil
}

// Product fills the defaults a freshly added product carries.
func (n NewProduct) Product() domain.Product {
	p := domain.Product{
		Name:        strings.TrimSpace(n.Name),
		Category:    strings.TrimSpace(n.Category),
		Price:       n.Price,
		Image:       strings.TrimSpace(n.Image),
		Description: strings.TrimSpace(n.Description),
		Features:    []string{},
		IsNew:       true,
		Rating:      ptr(5.0),
		Reviews:     ptr(0),
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if p.Image == "" {
		p.Image = defaultImage
	}
	return p
}
