package domain

// ProductType описывает категорию товара. Идентификаторы начинаются с 1.
type ProductType struct {
	ID    int64
	Label string
}

func NewProductType(id int64, label string) *ProductType {
	return &ProductType{
		ID:    id,
		Label: label,
	}
}

// ProductTypeCount — количество товаров в категории.
type ProductTypeCount struct {
	ProductType ProductType
	Quantity    int64
}
