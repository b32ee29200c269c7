package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/catalog"
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/model"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/images"
	"github.com/devNatanFrei/e-commerce/internal/platform/storage"
)

func passthroughTxMgr() *db.StubTxManager {
	return &db.StubTxManager{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func serviceTestConfig(debug bool) *config.Config {
	return &config.Config{
		Env:   "development",
		Debug: debug,
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestService_CreateProductDefaults(t *testing.T) {
	t.Parallel()

	var gotCreate catalog.CreateParams
	repo := &catalog.StubRepo{
		SlugExistsFunc: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(_ context.Context, params catalog.CreateParams) (catalog.Product, error) {
			gotCreate = params
			return catalog.Product{
				Model: model.Model{ID: params.ID},
				Name:  params.Name,
				Slug:  params.Slug,
				Type:  params.Type,
			}, nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	product, err := svc.CreateProduct(t.Context(), catalog.SaveProductParams{
		Name:             "Camiseta Básica",
		ShortDescription: "short",
		LongDescription:  "long",
		Price:            49.9,
	})
	if err != nil {
		t.Fatalf("svc.CreateProduct() error = %v", err)
	}

	if gotCreate.ID == "" {
		t.Error("created ID is empty, want a generated ID")
	}
	if gotCreate.Type != catalog.TypeVariable {
		t.Errorf("created type = %q, want: %q", gotCreate.Type, catalog.TypeVariable)
	}
	if gotCreate.Slug != "camiseta-basica" {
		t.Errorf("created slug = %q, want: %q", gotCreate.Slug, "camiseta-basica")
	}
	if product.Slug != "camiseta-basica" {
		t.Errorf("product.Slug = %q, want: %q", product.Slug, "camiseta-basica")
	}
}

func TestService_CreateProductSlugCollision(t *testing.T) {
	t.Parallel()

	var gotCreate catalog.CreateParams
	repo := &catalog.StubRepo{
		SlugExistsFunc: func(_ context.Context, slug string) (bool, error) {
			return slug == "camiseta" || slug == "camiseta-2", nil
		},
		CreateFunc: func(_ context.Context, params catalog.CreateParams) (catalog.Product, error) {
			gotCreate = params
			return catalog.Product{Model: model.Model{ID: params.ID}, Slug: params.Slug}, nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	_, err := svc.CreateProduct(t.Context(), catalog.SaveProductParams{
		Name:             "Camiseta",
		ShortDescription: "short",
		LongDescription:  "long",
		Price:            49.9,
	})
	if err != nil {
		t.Fatalf("svc.CreateProduct() error = %v", err)
	}

	if gotCreate.Slug != "camiseta-3" {
		t.Errorf("created slug = %q, want: %q", gotCreate.Slug, "camiseta-3")
	}
}

func TestService_CreateProductExplicitSlugTaken(t *testing.T) {
	t.Parallel()

	repo := &catalog.StubRepo{
		SlugExistsFunc: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	_, err := svc.CreateProduct(t.Context(), catalog.SaveProductParams{
		Name:             "Camiseta",
		ShortDescription: "short",
		LongDescription:  "long",
		Slug:             "camiseta",
		Price:            49.9,
	})
	if !errors.Is(err, catalog.ErrSlugTaken) {
		t.Errorf("svc.CreateProduct() error = %v, want: %v", err, catalog.ErrSlugTaken)
	}
}

func TestService_CreateProductWithVariations(t *testing.T) {
	t.Parallel()

	var gotProductID string
	var gotParams []catalog.VariationParams
	repo := &catalog.StubRepo{
		SlugExistsFunc: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(_ context.Context, params catalog.CreateParams) (catalog.Product, error) {
			return catalog.Product{Model: model.Model{ID: params.ID}, Slug: params.Slug}, nil
		},
		ReplaceVariationsFunc: func(_ context.Context, productID string, params []catalog.VariationParams) ([]catalog.Variation, error) {
			gotProductID = productID
			gotParams = params

			variations := make([]catalog.Variation, 0, len(params))
			for _, vp := range params {
				variations = append(variations, catalog.Variation{
					Model:      model.Model{ID: vp.ID},
					ProductID:  productID,
					Name:       vp.Name,
					Price:      vp.Price,
					PromoPrice: vp.PromoPrice,
					Stock:      vp.Stock,
				})
			}
			return variations, nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	product, err := svc.CreateProduct(t.Context(), catalog.SaveProductParams{
		Name:             "Camiseta",
		ShortDescription: "short",
		LongDescription:  "long",
		Price:            49.9,
		Variations: []catalog.VariationInput{
			{Name: "P", Price: 49.9, Stock: 3},
			{Name: "M", Price: 54.9, PromoPrice: 44.9, Stock: 5},
		},
	})
	if err != nil {
		t.Fatalf("svc.CreateProduct() error = %v", err)
	}

	if gotProductID != product.ID {
		t.Errorf("variations product ID = %q, want: %q", gotProductID, product.ID)
	}
	if len(gotParams) != 2 {
		t.Fatalf("len(variation params) = %d, want: 2", len(gotParams))
	}
	if gotParams[0].ID == "" {
		t.Error("variation ID is empty, want a generated ID")
	}
	if len(product.Variations) != 2 {
		t.Errorf("len(product.Variations) = %d, want: 2", len(product.Variations))
	}
}

func TestService_UpdateProductKeepsOwnSlug(t *testing.T) {
	t.Parallel()

	existing := &catalog.Product{
		Model: model.Model{ID: "p1"},
		Name:  "Camiseta",
		Slug:  "camiseta",
		Type:  catalog.TypeVariable,
	}

	var gotUpdate catalog.UpdateParams
	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return existing, nil
		},
		UpdateFunc: func(_ context.Context, params catalog.UpdateParams) error {
			gotUpdate = params
			return nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	// Same name, blank slug and type: both must be kept. SlugExists and
	// ReplaceVariations are not stubbed, so calling either fails the test.
	_, err := svc.UpdateProduct(t.Context(), "p1", catalog.SaveProductParams{
		Name:             "Camiseta",
		ShortDescription: "new short",
		LongDescription:  "new long",
		Price:            59.9,
	})
	if err != nil {
		t.Fatalf("svc.UpdateProduct() error = %v", err)
	}

	if gotUpdate.Slug != "camiseta" {
		t.Errorf("updated slug = %q, want: %q", gotUpdate.Slug, "camiseta")
	}
	if gotUpdate.Type != catalog.TypeVariable {
		t.Errorf("updated type = %q, want: %q", gotUpdate.Type, catalog.TypeVariable)
	}
}

func TestService_UpdateProductReplacesVariationsOnlyWhenSet(t *testing.T) {
	t.Parallel()

	existing := &catalog.Product{
		Model: model.Model{ID: "p1"},
		Name:  "Camiseta",
		Slug:  "camiseta",
		Type:  catalog.TypeVariable,
	}

	replaced := false
	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return existing, nil
		},
		UpdateFunc: func(_ context.Context, _ catalog.UpdateParams) error {
			return nil
		},
		ReplaceVariationsFunc: func(_ context.Context, _ string, params []catalog.VariationParams) ([]catalog.Variation, error) {
			replaced = true
			if len(params) != 0 {
				t.Errorf("len(variation params) = %d, want: 0", len(params))
			}
			return nil, nil
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	params := catalog.SaveProductParams{
		Name:             "Camiseta",
		ShortDescription: "short",
		LongDescription:  "long",
		Price:            59.9,
	}

	if _, err := svc.UpdateProduct(t.Context(), "p1", params); err != nil {
		t.Fatalf("svc.UpdateProduct() error = %v", err)
	}
	if replaced {
		t.Error("variations were replaced without a variations payload")
	}

	params.Variations = []catalog.VariationInput{}
	if _, err := svc.UpdateProduct(t.Context(), "p1", params); err != nil {
		t.Fatalf("svc.UpdateProduct() error = %v", err)
	}
	if !replaced {
		t.Error("an empty variations payload should clear the variations")
	}
}

func TestService_UpdateProductNotFound(t *testing.T) {
	t.Parallel()

	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return nil, catalog.ErrNotFound
		},
	}

	svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

	_, err := svc.UpdateProduct(t.Context(), "missing", catalog.SaveProductParams{Name: "Nope"})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("svc.UpdateProduct() error = %v, want: %v", err, catalog.ErrNotFound)
	}
}

func TestService_ListProductsClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     catalog.ListParams
		wantLimit  int
		wantOffset int
	}{
		{"Defaults", catalog.ListParams{}, catalog.DefaultLimit, 0},
		{"Negative values", catalog.ListParams{Limit: -1, Offset: -3}, catalog.DefaultLimit, 0},
		{"Capped limit", catalog.ListParams{Limit: 500, Offset: 24}, catalog.MaxLimit, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit, gotOffset int
			repo := &catalog.StubRepo{
				ListFunc: func(_ context.Context, limit, offset int) ([]catalog.Product, error) {
					gotLimit, gotOffset = limit, offset
					return []catalog.Product{}, nil
				},
				CountFunc: func(_ context.Context) (int, error) {
					return 7, nil
				},
			}

			svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, nil, serviceTestConfig(true))

			result, err := svc.ListProducts(t.Context(), tt.params)
			if err != nil {
				t.Fatalf("svc.ListProducts() error = %v", err)
			}

			if gotLimit != tt.wantLimit || gotOffset != tt.wantOffset {
				t.Errorf("repo.List(%d, %d), want: (%d, %d)", gotLimit, gotOffset, tt.wantLimit, tt.wantOffset)
			}
			if result.Total != 7 {
				t.Errorf("result.Total = %d, want: 7", result.Total)
			}
			if result.Limit != tt.wantLimit {
				t.Errorf("result.Limit = %d, want: %d", result.Limit, tt.wantLimit)
			}
		})
	}
}

func TestService_AttachImageDebugStoresOriginal(t *testing.T) {
	t.Parallel()

	raw := pngBytes(t, 800, 600)

	var gotKey, gotContentType string
	var gotData []byte
	uploader := &storage.StubUploader{
		UploadFunc: func(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return "", err
			}
			gotKey, gotData, gotContentType = key, data, contentType
			return key, nil
		},
	}

	var gotImage string
	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return &catalog.Product{Model: model.Model{ID: "p1"}, Name: "Camiseta", Slug: "camiseta"}, nil
		},
		SetImageFunc: func(_ context.Context, _, image string, _ time.Time) error {
			gotImage = image
			return nil
		},
	}

	// In debug mode the processor must not run: passing none proves it.
	svc := catalog.NewService(repo, passthroughTxMgr(), uploader, nil, serviceTestConfig(true))

	updated, err := svc.AttachImage(t.Context(), "p1", "Foto da Camiseta.png", raw)
	if err != nil {
		t.Fatalf("svc.AttachImage() error = %v", err)
	}

	if !bytes.Equal(gotData, raw) {
		t.Error("uploaded bytes differ from the original in debug mode")
	}
	if !strings.HasPrefix(gotKey, "products/") {
		t.Errorf("key = %q, want a products/ prefix", gotKey)
	}
	if !strings.HasSuffix(gotKey, "foto-da-camiseta.png") {
		t.Errorf("key = %q, want a slugified file name", gotKey)
	}
	if gotContentType != "image/png" {
		t.Errorf("content type = %q, want: %q", gotContentType, "image/png")
	}
	if updated.Image != gotImage {
		t.Errorf("updated.Image = %q, want: %q", updated.Image, gotImage)
	}
}

func TestService_AttachImageProductionProcesses(t *testing.T) {
	t.Parallel()

	raw := pngBytes(t, 800, 600)

	var gotKey string
	var gotData []byte
	uploader := &storage.StubUploader{
		UploadFunc: func(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return "", err
			}
			gotKey, gotData = key, data
			return key, nil
		},
	}

	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return &catalog.Product{Model: model.Model{ID: "p1"}, Name: "Camiseta", Slug: "camiseta"}, nil
		},
		SetImageFunc: func(_ context.Context, _, _ string, _ time.Time) error {
			return nil
		},
	}

	processor := images.NewProcessor(&config.Image{MaxWidth: 400, Format: images.FormatPNG, JPEGQuality: 60})
	svc := catalog.NewService(repo, passthroughTxMgr(), uploader, processor, serviceTestConfig(false))

	if _, err := svc.AttachImage(t.Context(), "p1", "foto.jpg", raw); err != nil {
		t.Fatalf("svc.AttachImage() error = %v", err)
	}

	if !strings.HasSuffix(gotKey, ".png") {
		t.Errorf("key = %q, want a .png extension after processing", gotKey)
	}

	img, err := png.Decode(bytes.NewReader(gotData))
	if err != nil {
		t.Fatalf("failed to decode uploaded image: %v", err)
	}
	if width := img.Bounds().Dx(); width != 400 {
		t.Errorf("uploaded image width = %d, want: 400", width)
	}
}

func TestService_AttachImageRejectsGarbage(t *testing.T) {
	t.Parallel()

	repo := &catalog.StubRepo{
		FindFunc: func(_ context.Context, _ string) (*catalog.Product, error) {
			return &catalog.Product{Model: model.Model{ID: "p1"}}, nil
		},
	}

	processor := images.NewProcessor(&config.Image{MaxWidth: 400, Format: images.FormatPNG, JPEGQuality: 60})

	for _, debug := range []bool{true, false} {
		svc := catalog.NewService(repo, passthroughTxMgr(), &storage.StubUploader{}, processor, serviceTestConfig(debug))

		_, err := svc.AttachImage(t.Context(), "p1", "nota.txt", []byte("not an image"))
		if !errors.Is(err, catalog.ErrBadImage) {
			t.Errorf("svc.AttachImage() error = %v, want: %v (debug=%t)", err, catalog.ErrBadImage, debug)
		}
	}
}
