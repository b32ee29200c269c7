package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/images"
	"github.com/devNatanFrei/e-commerce/internal/platform/storage"
)

// Bounds for the public product listing.
const (
	DefaultLimit = 12
	MaxLimit     = 60
)

const uploadPrefix = "products"

var (
	// ErrSlugTaken is returned when an explicitly requested slug is already in use.
	ErrSlugTaken = errors.New("catalog: slug already taken")
	// ErrBadImage is returned when an upload cannot be decoded as an image.
	ErrBadImage = errors.New("catalog: unusable image")
)

// Repository is the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Product, error)
	Update(ctx context.Context, params UpdateParams) error
	SetImage(ctx context.Context, productID, image string, now time.Time) error
	Delete(ctx context.Context, productID string) error
	Find(ctx context.Context, productID string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]Product, error)
	Count(ctx context.Context) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ReplaceVariations(ctx context.Context, productID string, params []VariationParams) ([]Variation, error)
}

type VariationInput struct {
	Name       string
	Price      float64
	PromoPrice float64
	Stock      int
}

type SaveProductParams struct {
	Name             string
	ShortDescription string
	LongDescription  string
	Slug             string
	Price            float64
	PromoPrice       float64
	Type             string

	// Variations replaces the product's variations when non-nil. A nil
	// slice leaves them untouched, an empty one removes them all.
	Variations []VariationInput
}

type ListParams struct {
	Limit  int
	Offset int
}

type ListResult struct {
	Products []Product
	Total    int
	Limit    int
	Offset   int
}

type service struct {
	repo      Repository
	txMgr     db.TxManager
	uploader  storage.Uploader
	processor *images.Processor
	cfg       *config.Config
}

var _ Service = &service{}

func NewService(repo Repository, txMgr db.TxManager, uploader storage.Uploader, processor *images.Processor, cfg *config.Config) *service {
	return &service{
		repo:      repo,
		txMgr:     txMgr,
		uploader:  uploader,
		processor: processor,
		cfg:       cfg,
	}
}

func (s *service) CreateProduct(ctx context.Context, params SaveProductParams) (Product, error) {
	productType := params.Type
	if productType == "" {
		productType = TypeVariable
	}

	productSlug, err := s.resolveSlug(ctx, params.Slug, params.Name, "")
	if err != nil {
		return Product{}, err
	}

	now := time.Now().UTC()
	var product Product
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.repo.Create(txCtx, CreateParams{
			ID:               uuid.NewString(),
			Name:             params.Name,
			ShortDescription: params.ShortDescription,
			LongDescription:  params.LongDescription,
			Slug:             productSlug,
			Price:            params.Price,
			PromoPrice:       params.PromoPrice,
			Type:             productType,
			Now:              now,
		})
		if err != nil {
			return err
		}
		product = created

		if len(params.Variations) == 0 {
			return nil
		}

		variations, err := s.repo.ReplaceVariations(txCtx, product.ID, variationParams(params.Variations, now))
		if err != nil {
			return err
		}
		product.Variations = variations

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConstraintViolation) {
			return Product{}, ErrSlugTaken
		}
		return Product{}, fmt.Errorf("create product %s: %w", params.Name, err)
	}

	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID string, params SaveProductParams) (Product, error) {
	existing, err := s.repo.Find(ctx, productID)
	if err != nil {
		return Product{}, err
	}

	productType := params.Type
	if productType == "" {
		productType = existing.Type
	}

	productSlug, err := s.resolveSlug(ctx, params.Slug, params.Name, existing.Slug)
	if err != nil {
		return Product{}, err
	}

	now := time.Now().UTC()
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.repo.Update(txCtx, UpdateParams{
			ID:               productID,
			Name:             params.Name,
			ShortDescription: params.ShortDescription,
			LongDescription:  params.LongDescription,
			Slug:             productSlug,
			Price:            params.Price,
			PromoPrice:       params.PromoPrice,
			Type:             productType,
			Now:              now,
		})
		if err != nil {
			return err
		}

		if params.Variations == nil {
			return nil
		}

		_, err = s.repo.ReplaceVariations(txCtx, productID, variationParams(params.Variations, now))
		return err
	})
	if err != nil {
		if errors.Is(err, ErrConstraintViolation) {
			return Product{}, ErrSlugTaken
		}
		return Product{}, fmt.Errorf("update product with id %s: %w", productID, err)
	}

	updated, err := s.repo.Find(ctx, productID)
	if err != nil {
		return Product{}, err
	}

	return *updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product with id %s: %w", productID, err)
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productSlug string) (*Product, error) {
	return s.repo.FindBySlug(ctx, productSlug)
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (ListResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return ListResult{}, fmt.Errorf("list products: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("count products: %w", err)
	}

	return ListResult{
		Products: products,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// AttachImage stores an uploaded image and records its reference on the
// product. Outside debug mode the image goes through the processor first;
// in debug the original bytes are stored untouched.
func (s *service) AttachImage(ctx context.Context, productID, filename string, data []byte) (Product, error) {
	product, err := s.repo.Find(ctx, productID)
	if err != nil {
		return Product{}, err
	}

	name := filename
	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return Product{}, fmt.Errorf("%w: content type %s", ErrBadImage, contentType)
	}

	if !s.cfg.Debug {
		processed, err := s.processor.Process(data, filename)
		if err != nil {
			return Product{}, fmt.Errorf("%w: %v", ErrBadImage, err)
		}
		data = processed.Data
		name = processed.Name
		contentType = processed.ContentType
	}

	now := time.Now().UTC()
	key := storage.ObjectKey(uploadPrefix, name, now)
	stored, err := s.uploader.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return Product{}, fmt.Errorf("upload image of product with id %s: %w", productID, err)
	}

	if err := s.repo.SetImage(ctx, productID, stored, now); err != nil {
		return Product{}, err
	}

	product.Image = stored
	product.UpdatedAt = now

	return *product, nil
}

// resolveSlug picks the slug to store. Explicit slugs must be free, blank
// slugs are generated from the name and suffixed with -2, -3... until
// unique. current is the product's own slug on updates, so a product never
// collides with itself.
func (s *service) resolveSlug(ctx context.Context, explicit, name, current string) (string, error) {
	if explicit != "" {
		if explicit == current {
			return explicit, nil
		}

		taken, err := s.repo.SlugExists(ctx, explicit)
		if err != nil {
			return "", fmt.Errorf("check slug %s: %w", explicit, err)
		}
		if taken {
			return "", ErrSlugTaken
		}

		return explicit, nil
	}

	base := slug.Make(name)
	if base == current {
		return base, nil
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func variationParams(inputs []VariationInput, now time.Time) []VariationParams {
	params := make([]VariationParams, 0, len(inputs))
	for _, in := range inputs {
		params = append(params, VariationParams{
			ID:         uuid.NewString(),
			Name:       in.Name,
			Price:      in.Price,
			PromoPrice: in.PromoPrice,
			Stock:      in.Stock,
			Now:        now,
		})
	}
	return params
}
