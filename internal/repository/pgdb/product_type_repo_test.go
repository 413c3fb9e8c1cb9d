package pgdb

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductTypeRepo_ListProductTypes(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductTypeRepo(mock, converter.ProductTypeConverter{})

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY label COLLATE "C", id`)).
		WillReturnRows(mock.NewRows([]string{"id", "label"}).
			AddRow(int64(1), "Books").
			AddRow(int64(3), "Games").
			AddRow(int64(2), "Tools"))

	types, err := repo.ListProductTypes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.ProductType{
		{ID: 1, Label: "Books"},
		{ID: 3, Label: "Games"},
		{ID: 2, Label: "Tools"},
	}, types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductTypeRepo_ListProductTypesError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductTypeRepo(mock, converter.ProductTypeConverter{})

	mock.ExpectQuery(regexp.QuoteMeta("FROM product_types")).
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListProductTypes(context.Background())

	var storeErr *e.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestCatalogStoreComposesRepositories(t *testing.T) {
	mock := newMockPool(t)
	store := NewCatalogStore(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM product_types")).
		WillReturnRows(mock.NewRows([]string{"id", "label"}).AddRow(int64(1), "Books"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
		WillReturnRows(mock.NewRows(productColumns))

	types, err := store.ListProductTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 1)

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	assert.NoError(t, mock.ExpectationsWereMet())
}
