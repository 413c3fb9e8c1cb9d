package usecase

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/google/uuid"
)

// CreateProduct проверяет форму, назначает владельцем текущего пользователя и сохраняет товар.
// При ошибке валидации возвращает e.ValidationErrors и ничего не пишет.
// Ошибка хранилища (*e.StoreError) возвращается без изменений, повторов нет.
func (p *ProductUseCase) CreateProduct(ctx context.Context, form *CreateProductForm) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	product, verrs := p.validateProductForm(form)
	if verrs != nil {
		return nil, verrs
	}

	principal, err := p.identity.CurrentPrincipal(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if principal == nil {
		return nil, e.Wrap(op, e.ErrUnauthenticated)
	}
	product.OwnerID = principal.ID

	var imageKey string
	if form.Image != nil {
		imageKey, err = p.imagesInfra.UploadImage(ctx, NewUploadImageReq(product.Title, *form.Image))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		product.ImageKey = &imageKey
	}

	var created *domain.Product
	err = p.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = p.store.AddProduct(ctx, product)
		if err != nil {
			return err
		}

		return p.enqueueProductCreated(ctx, created)
	})
	if err != nil {
		if imageKey != "" {
			p.logger.Warnf("Cleaning up orphaned image after transaction failure. product_title: %s, error: %v", product.Title, err)
			p.imagesInfra.CleanupImages([]string{imageKey})
		}
		return nil, err
	}

	p.logger.Infof("Product created. product_id: %d, owner_id: %s", created.ID, created.OwnerID)
	return created, nil
}

// enqueueProductCreated записывает событие о создании товара в outbox в текущей транзакции.
func (p *ProductUseCase) enqueueProductCreated(ctx context.Context, product *domain.Product) error {
	const op = "ProductUseCase.enqueueProductCreated"

	eventID := uuid.NewString()
	payload, err := p.encoder.EncodeProductCreated(&ProductCreatedEvent{
		EventID:       eventID,
		ProductID:     product.ID,
		ProductTypeID: product.ProductTypeID,
		OwnerID:       product.OwnerID,
		Title:         product.Title,
		CreatedAt:     product.CreatedAt,
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err := p.outboxRepo.Create(ctx, NewOutboxEvent(eventID, ProductCreated, product.ID, payload)); err != nil {
		return err
	}

	return nil
}
