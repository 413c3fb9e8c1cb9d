package converter

import (
	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/google/uuid"
)

// ProductConverter преобразует товар с владельцем в модель кэша и обратно.
type ProductConverter struct{}

func (ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	model := &ProductRedisModel{
		ID:            entity.ID,
		Title:         entity.Title,
		Description:   entity.Description,
		Price:         entity.Price,
		Quantity:      entity.Quantity,
		ProductTypeID: entity.ProductTypeID,
		OwnerID:       entity.OwnerID.String(),
		ImageKey:      entity.ImageKey,
		CreatedAt:     entity.CreatedAt,
	}

	if entity.Owner != nil {
		model.Owner = &OwnerRedisModel{
			ID:        entity.Owner.ID.String(),
			Email:     entity.Owner.Email,
			FirstName: entity.Owner.FirstName,
			LastName:  entity.Owner.LastName,
		}
	}

	return model
}

func (ProductConverter) ToEntity(model *ProductRedisModel) (*domain.Product, error) {
	ownerID, err := uuid.Parse(model.OwnerID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		Price:         model.Price,
		Quantity:      model.Quantity,
		ProductTypeID: model.ProductTypeID,
		OwnerID:       ownerID,
		ImageKey:      model.ImageKey,
		CreatedAt:     model.CreatedAt,
	}

	if model.Owner != nil {
		id, err := uuid.Parse(model.Owner.ID)
		if err != nil {
			return nil, err
		}
		product.Owner = &domain.Principal{
			ID:        id,
			Email:     model.Owner.Email,
			FirstName: model.Owner.FirstName,
			LastName:  model.Owner.LastName,
		}
	}

	return product, nil
}
