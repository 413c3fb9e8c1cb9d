package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	store       CatalogStore
	txManager   TxManager
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	imagesInfra ImagesInfra
	encoder     EventEncoder
	identity    IdentityProvider
	validate    *validator.Validate
	logger      logger.Logger
}

func NewProductUC(
	store CatalogStore,
	txManager TxManager,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	encoder EventEncoder,
	identity IdentityProvider,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		store:       store,
		txManager:   txManager,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		imagesInfra: imagesInfra,
		encoder:     encoder,
		identity:    identity,
		validate:    newFormValidator(),
		logger:      logger,
	}
}

// Index возвращает все товары.
func (p *ProductUseCase) Index(ctx context.Context) ([]domain.Product, error) {
	return p.store.ListProducts(ctx)
}

// Detail возвращает товар с владельцем. Отсутствующий id и отсутствующий товар дают e.ErrNotFound.
func (p *ProductUseCase) Detail(ctx context.Context, id *int64) (*domain.Product, error) {
	const op = "ProductUseCase.Detail"

	if id == nil {
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	// Товар после создания не меняется, а данные владельца (email, имя) принадлежат провайдеру
	// идентификации и могут измениться: в кэше они остаются устаревшими не дольше REDIS_PRODUCT_TTL
	cached, err := p.cacheRepo.GetProduct(ctx, *id)
	if err != nil {
		p.logger.Warnf("Failed to read product %d from cache: %v", *id, e.Wrap(op, err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := p.store.GetProductWithOwner(ctx, *id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	// Фоновое добавление товара в кэш
	go func(product domain.Product) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, &product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}(*product)

	return product, nil
}
