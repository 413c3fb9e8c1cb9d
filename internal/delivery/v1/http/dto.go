package http

import (
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/shopspring/decimal"
)

type OwnerResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProductResponse struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         string         `json:"price"`
	Quantity      int32          `json:"quantity"`
	ProductTypeID int64          `json:"product_type_id"`
	OwnerID       string         `json:"owner_id"`
	ImageKey      *string        `json:"image_key,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Owner         *OwnerResponse `json:"owner,omitempty"`
}

type ProductTypeCountResponse struct {
	ProductTypeID int64  `json:"product_type_id"`
	Label         string `json:"label"`
	Quantity      int64  `json:"quantity"`
}

type CategoryOptionsResponse struct {
	CategoryOptions []usecase.CategoryOption `json:"category_options"`
}

// ValidationErrorResponse возвращается на невалидную форму вместе со свежим списком категорий.
type ValidationErrorResponse struct {
	Errors          map[string]string        `json:"errors"`
	CategoryOptions []usecase.CategoryOption `json:"category_options"`
}

// formatPrice переводит цену в центах в десятичную строку с двумя знаками.
func formatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func toProductResponse(p *domain.Product) ProductResponse {
	res := ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         formatPrice(p.Price),
		Quantity:      p.Quantity,
		ProductTypeID: p.ProductTypeID,
		OwnerID:       p.OwnerID.String(),
		ImageKey:      p.ImageKey,
		CreatedAt:     p.CreatedAt,
	}

	if p.Owner != nil {
		res.Owner = &OwnerResponse{
			ID:        p.Owner.ID.String(),
			Email:     p.Owner.Email,
			FirstName: p.Owner.FirstName,
			LastName:  p.Owner.LastName,
		}
	}

	return res
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = toProductResponse(&products[i])
	}

	return res
}

func toArrTypeCountResponse(counts []domain.ProductTypeCount) []ProductTypeCountResponse {
	res := make([]ProductTypeCountResponse, len(counts))
	for i, c := range counts {
		res[i] = ProductTypeCountResponse{
			ProductTypeID: c.ProductType.ID,
			Label:         c.ProductType.Label,
			Quantity:      c.Quantity,
		}
	}

	return res
}
