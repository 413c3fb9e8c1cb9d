package usecase

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
)

// TypeCounts считает товары по категориям.
// Сначала товары группируются по ProductTypeID, затем группы соединяются с категориями внутренним соединением:
// категории без товаров в результат не попадают. Порядок совпадает с порядком ListProductTypes.
func (p *ProductUseCase) TypeCounts(ctx context.Context) ([]domain.ProductTypeCount, error) {
	products, err := p.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	types, err := p.store.ListProductTypes(ctx)
	if err != nil {
		return nil, err
	}

	return countByType(products, types), nil
}

func countByType(products []domain.Product, types []domain.ProductType) []domain.ProductTypeCount {
	counts := make(map[int64]int64, len(types))
	for _, product := range products {
		counts[product.ProductTypeID]++
	}

	result := make([]domain.ProductTypeCount, 0, len(counts))
	for _, t := range types {
		quantity, ok := counts[t.ID]
		if !ok {
			continue
		}
		result = append(result, domain.ProductTypeCount{ProductType: t, Quantity: quantity})
	}

	return result
}
