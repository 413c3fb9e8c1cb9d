package usecase

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
)

type ProductUC interface {
	Index(ctx context.Context) ([]domain.Product, error)
	Detail(ctx context.Context, id *int64) (*domain.Product, error)
	TypeCounts(ctx context.Context) ([]domain.ProductTypeCount, error)
	CategoryOptions(ctx context.Context) ([]CategoryOption, error)
	CreateProduct(ctx context.Context, form *CreateProductForm) (*domain.Product, error)
}
