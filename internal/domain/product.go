package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product описывает товар каталога
type Product struct {
	ID            int64
	Title         string
	Description   string
	Price         int64 // Цена хранится в центах
	Quantity      int32
	ProductTypeID int64
	OwnerID       uuid.UUID  // Назначается только при создании
	Owner         *Principal // Заполняется только при запросе деталей
	ImageKey      *string
	CreatedAt     time.Time
}

func NewProduct(title, description string, price int64, quantity int32, productTypeID int64) *Product {
	return &Product{
		Title:         title,
		Description:   description,
		Price:         price,
		Quantity:      quantity,
		ProductTypeID: productTypeID,
	}
}
