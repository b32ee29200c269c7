package catalog

import (
	"context"
	"errors"
	"time"
)

type StubService struct {
	CreateProductFunc func(ctx context.Context, params SaveProductParams) (Product, error)
	UpdateProductFunc func(ctx context.Context, productID string, params SaveProductParams) (Product, error)
	DeleteProductFunc func(ctx context.Context, productID string) error
	GetProductFunc    func(ctx context.Context, productSlug string) (*Product, error)
	ListProductsFunc  func(ctx context.Context, params ListParams) (ListResult, error)
	AttachImageFunc   func(ctx context.Context, productID, filename string, data []byte) (Product, error)
}

var _ Service = &StubService{}

func (s *StubService) CreateProduct(ctx context.Context, params SaveProductParams) (Product, error) {
	if s.CreateProductFunc == nil {
		return Product{}, errors.New("CreateProduct() not implemented by stub")
	}
	return s.CreateProductFunc(ctx, params)
}

func (s *StubService) UpdateProduct(ctx context.Context, productID string, params SaveProductParams) (Product, error) {
	if s.UpdateProductFunc == nil {
		return Product{}, errors.New("UpdateProduct() not implemented by stub")
	}
	return s.UpdateProductFunc(ctx, productID, params)
}

func (s *StubService) DeleteProduct(ctx context.Context, productID string) error {
	if s.DeleteProductFunc == nil {
		return errors.New("DeleteProduct() not implemented by stub")
	}
	return s.DeleteProductFunc(ctx, productID)
}

func (s *StubService) GetProduct(ctx context.Context, productSlug string) (*Product, error) {
	if s.GetProductFunc == nil {
		return nil, errors.New("GetProduct() not implemented by stub")
	}
	return s.GetProductFunc(ctx, productSlug)
}

func (s *StubService) ListProducts(ctx context.Context, params ListParams) (ListResult, error) {
	if s.ListProductsFunc == nil {
		return ListResult{}, errors.New("ListProducts() not implemented by stub")
	}
	return s.ListProductsFunc(ctx, params)
}

func (s *StubService) AttachImage(ctx context.Context, productID, filename string, data []byte) (Product, error) {
	if s.AttachImageFunc == nil {
		return Product{}, errors.New("AttachImage() not implemented by stub")
	}
	return s.AttachImageFunc(ctx, productID, filename, data)
}

type StubRepo struct {
	CreateFunc            func(ctx context.Context, params CreateParams) (Product, error)
	UpdateFunc            func(ctx context.Context, params UpdateParams) error
	SetImageFunc          func(ctx context.Context, productID, image string, now time.Time) error
	DeleteFunc            func(ctx context.Context, productID string) error
	FindFunc              func(ctx context.Context, productID string) (*Product, error)
	FindBySlugFunc        func(ctx context.Context, slug string) (*Product, error)
	ListFunc              func(ctx context.Context, limit, offset int) ([]Product, error)
	CountFunc             func(ctx context.Context) (int, error)
	SlugExistsFunc        func(ctx context.Context, slug string) (bool, error)
	ReplaceVariationsFunc func(ctx context.Context, productID string, params []VariationParams) ([]Variation, error)
}

var _ Repository = &StubRepo{}

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Product, error) {
	if r.CreateFunc == nil {
		return Product{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Update(ctx context.Context, params UpdateParams) error {
	if r.UpdateFunc == nil {
		return errors.New("Update() not implemented by stub")
	}
	return r.UpdateFunc(ctx, params)
}

func (r *StubRepo) SetImage(ctx context.Context, productID, image string, now time.Time) error {
	if r.SetImageFunc == nil {
		return errors.New("SetImage() not implemented by stub")
	}
	return r.SetImageFunc(ctx, productID, image, now)
}

func (r *StubRepo) Delete(ctx context.Context, productID string) error {
	if r.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return r.DeleteFunc(ctx, productID)
}

func (r *StubRepo) Find(ctx context.Context, productID string) (*Product, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, productID)
}

func (r *StubRepo) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	if r.FindBySlugFunc == nil {
		return nil, errors.New("FindBySlug() not implemented by stub")
	}
	return r.FindBySlugFunc(ctx, slug)
}

func (r *StubRepo) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx, limit, offset)
}

func (r *StubRepo) Count(ctx context.Context) (int, error) {
	if r.CountFunc == nil {
		return 0, errors.New("Count() not implemented by stub")
	}
	return r.CountFunc(ctx)
}

func (r *StubRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if r.SlugExistsFunc == nil {
		return false, errors.New("SlugExists() not implemented by stub")
	}
	return r.SlugExistsFunc(ctx, slug)
}

func (r *StubRepo) ReplaceVariations(ctx context.Context, productID string, params []VariationParams) ([]Variation, error) {
	if r.ReplaceVariationsFunc == nil {
		return nil, errors.New("ReplaceVariations() not implemented by stub")
	}
	return r.ReplaceVariationsFunc(ctx, productID, params)
}
