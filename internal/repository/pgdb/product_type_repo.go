package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/jimlawless/whereami"
)

type ProductTypeRepo struct {
	db   DB
	conv converter.ProductTypeConverter
}

func NewProductTypeRepo(db DB, conv converter.ProductTypeConverter) *ProductTypeRepo {
	return &ProductTypeRepo{
		db:   db,
		conv: conv,
	}
}

// ListProductTypes возвращает категории по возрастанию метки (побайтово), при равных метках по id.
func (p *ProductTypeRepo) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	query := `
		SELECT id, label
		FROM product_types
		ORDER BY label COLLATE "C", id
	`

	rows, err := tr.QuerierFromCtx(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ProductType, 0)
	for rows.Next() {
		var model converter.ProductTypeModel
		if err := rows.Scan(&model.ID, &model.Label); err != nil {
			return nil, e.NewStoreError(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}

	return result, nil
}
