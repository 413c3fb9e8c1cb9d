package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/google/uuid"
)

// ProductRepository — доступ к товарам.
type ProductRepository interface {
	// ListProducts возвращает все товары; пустой срез не является ошибкой.
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// GetProductWithOwner возвращает товар вместе с владельцем или (nil, nil), если товара нет.
	GetProductWithOwner(ctx context.Context, id int64) (*domain.Product, error)
	// AddProduct сохраняет товар и возвращает записанную строку.
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

// ProductTypeRepository — доступ к категориям товаров (только чтение).
type ProductTypeRepository interface {
	// ListProductTypes возвращает категории, упорядоченные по метке.
	ListProductTypes(ctx context.Context) ([]domain.ProductType, error)
}

// CatalogStore — хранилище каталога целиком.
type CatalogStore interface {
	ProductRepository
	ProductTypeRepository
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
	ReclaimStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}
