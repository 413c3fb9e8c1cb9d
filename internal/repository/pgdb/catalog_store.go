package pgdb

import "github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"

// CatalogStore объединяет репозитории товаров и категорий.
type CatalogStore struct {
	*ProductRepo
	*ProductTypeRepo
}

func NewCatalogStore(db DB) *CatalogStore {
	return &CatalogStore{
		ProductRepo:     NewProductRepo(db, converter.ProductConverter{}),
		ProductTypeRepo: NewProductTypeRepo(db, converter.ProductTypeConverter{}),
	}
}
