package converter

import "time"

type ProductRedisModel struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Price         int64            `json:"price"`
	Quantity      int32            `json:"quantity"`
	ProductTypeID int64            `json:"product_type_id"`
	OwnerID       string           `json:"owner_id"`
	ImageKey      *string          `json:"image_key,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Owner         *OwnerRedisModel `json:"owner,omitempty"`
}

type OwnerRedisModel struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
