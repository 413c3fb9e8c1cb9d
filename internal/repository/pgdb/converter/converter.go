package converter

import (
	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
)

// ProductConverter преобразует Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:            entity.ID,
		Title:         entity.Title,
		Description:   entity.Description,
		Price:         entity.Price,
		Quantity:      entity.Quantity,
		ProductTypeID: entity.ProductTypeID,
		OwnerID:       entity.OwnerID,
		ImageKey:      entity.ImageKey,
		CreatedAt:     entity.CreatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		Price:         model.Price,
		Quantity:      model.Quantity,
		ProductTypeID: model.ProductTypeID,
		OwnerID:       model.OwnerID,
		ImageKey:      model.ImageKey,
		CreatedAt:     model.CreatedAt,
	}
}

// WithOwner собирает товар вместе с его владельцем.
func (c ProductConverter) WithOwner(model *ProductModel, owner *UserModel) *domain.Product {
	product := c.ToEntity(model)
	if product != nil && owner != nil {
		product.Owner = UserConverter{}.ToEntity(owner)
	}

	return product
}

// UserConverter преобразует пользователя в Principal.
type UserConverter struct{}

func (UserConverter) ToEntity(model *UserModel) *domain.Principal {
	if model == nil {
		return nil
	}

	return &domain.Principal{
		ID:        model.ID,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
	}
}

// ProductTypeConverter преобразует ProductType между domain и моделью PostgreSQL.
type ProductTypeConverter struct{}

func (ProductTypeConverter) ToEntity(model *ProductTypeModel) *domain.ProductType {
	return domain.NewProductType(model.ID, model.Label)
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ProductID:   entity.ProductID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}

	return result
}
