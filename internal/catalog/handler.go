package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
	"github.com/devNatanFrei/e-commerce/internal/pricing"
)

const imageFormField = "image"

type Service interface {
	CreateProduct(ctx context.Context, params SaveProductParams) (Product, error)
	UpdateProduct(ctx context.Context, productID string, params SaveProductParams) (Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productSlug string) (*Product, error)
	ListProducts(ctx context.Context, params ListParams) (ListResult, error)
	AttachImage(ctx context.Context, productID, filename string, data []byte) (Product, error)
}

type Handler struct {
	svc Service
	cfg *config.Config
}

func NewHandler(svc Service, cfg *config.Config) *Handler {
	return &Handler{
		svc: svc,
		cfg: cfg,
	}
}

type VariationPayload struct {
	Name       string  `json:"name,omitempty" validate:"max=50"`
	Price      float64 `json:"price,omitempty" validate:"required,gt=0"`
	PromoPrice float64 `json:"promo_price,omitempty" validate:"gte=0"`
	Stock      int     `json:"stock,omitempty" validate:"gte=0"`
}

type SaveProductRequest struct {
	Name             string             `json:"name,omitempty" validate:"required,max=255"`
	ShortDescription string             `json:"short_description,omitempty" validate:"required,max=255"`
	LongDescription  string             `json:"long_description,omitempty" validate:"required"`
	Slug             string             `json:"slug,omitempty" validate:"omitempty,max=255"`
	Price            float64            `json:"price,omitempty" validate:"required,gt=0"`
	PromoPrice       float64            `json:"promo_price,omitempty" validate:"gte=0"`
	Type             string             `json:"type,omitempty" validate:"omitempty,oneof=V S"`
	Variations       []VariationPayload `json:"variations,omitempty" validate:"omitempty,dive"`
}

type VariationData struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PromoPrice   float64 `json:"promo_price"`
	PriceDisplay string  `json:"price_display"`
	Stock        int     `json:"stock"`
}

type ProductData struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	LongDescription  string          `json:"long_description"`
	Image            string          `json:"image,omitempty"`
	Slug             string          `json:"slug"`
	Price            float64         `json:"price"`
	PromoPrice       float64         `json:"promo_price"`
	PriceDisplay     string          `json:"price_display"`
	Type             string          `json:"type"`
	Variations       []VariationData `json:"variations"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ListProductsResponse struct {
	Products []ProductData `json:"products"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// ListProducts serves the public product listing, newest first.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	result, err := h.svc.ListProducts(r.Context(), ListParams{Limit: limit, Offset: offset})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, h.newListProductsResponse(result))
}

// GetProduct serves a single product looked up by slug.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, h.transformProduct(*product))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[SaveProductRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), saveParams(req))
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			web.RespondConflict(w, err, MsgSlugTaken, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgProductCreated
	web.RespondCreated(w, &msg, h.transformProduct(product))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[SaveProductRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), r.PathValue("id"), saveParams(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			web.RespondNotFound(w, err, message.NotFound, nil)
		case errors.Is(err, ErrSlugTaken):
			web.RespondConflict(w, err, MsgSlugTaken, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := MsgProductUpdated
	web.RespondOK(w, &msg, h.transformProduct(product))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondNoContent(w)
}

// UploadImage accepts a multipart form with an "image" file field and
// attaches the stored image to the product.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.Server.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			web.RespondRequestEntityTooLarge(w, err, MsgImageTooLarge, nil)
			return
		}
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		web.RespondBadRequest(w, err, MsgImageMissing, nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	product, err := h.svc.AttachImage(r.Context(), r.PathValue("id"), header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			web.RespondNotFound(w, err, message.NotFound, nil)
		case errors.Is(err, ErrBadImage):
			web.RespondUnprocessableEntity(w, err, MsgBadImage, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := MsgImageUploaded
	web.RespondOK(w, &msg, h.transformProduct(product))
}

func saveParams(req SaveProductRequest) SaveProductParams {
	params := SaveProductParams{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Slug:             req.Slug,
		Price:            req.Price,
		PromoPrice:       req.PromoPrice,
		Type:             req.Type,
	}

	if req.Variations != nil {
		params.Variations = make([]VariationInput, 0, len(req.Variations))
		for _, v := range req.Variations {
			params.Variations = append(params.Variations, VariationInput(v))
		}
	}

	return params
}

func (h *Handler) transformProduct(p Product) ProductData {
	variations := make([]VariationData, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, VariationData{
			ID:           v.ID,
			Name:         v.DisplayName(p.Name),
			Price:        v.Price,
			PromoPrice:   v.PromoPrice,
			PriceDisplay: displayPrice(v.Price, v.PromoPrice),
			Stock:        v.Stock,
		})
	}

	return ProductData{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Image:            h.imageURL(p.Image),
		Slug:             p.Slug,
		Price:            p.Price,
		PromoPrice:       p.PromoPrice,
		PriceDisplay:     displayPrice(p.Price, p.PromoPrice),
		Type:             p.Type,
		Variations:       variations,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (h *Handler) newListProductsResponse(result ListResult) *ListProductsResponse {
	products := make([]ProductData, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, h.transformProduct(p))
	}

	return &ListProductsResponse{
		Products: products,
		Total:    result.Total,
		Limit:    result.Limit,
		Offset:   result.Offset,
	}
}

// imageURL resolves a stored image reference for clients: absolute URLs
// pass through, bare keys are served under the media URL.
func (h *Handler) imageURL(image string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return strings.TrimSuffix(h.cfg.Media.URL, "/") + "/" + image
}

// displayPrice formats the price a buyer pays: the promo price when one is
// set, the regular price otherwise.
func displayPrice(price, promoPrice float64) string {
	return pricing.FormatBRL(pricing.EffectivePrice(price, promoPrice))
}
