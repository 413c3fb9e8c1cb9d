package converter

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Price         int64     `db:"price"`
	Quantity      int32     `db:"quantity"`
	ProductTypeID int64     `db:"product_type_id"`
	OwnerID       uuid.UUID `db:"owner_id"`
	ImageKey      *string   `db:"image_key"`
	CreatedAt     time.Time `db:"created_at"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
}

// ProductTypeModel представляет запись таблицы product_types в PostgreSQL.
type ProductTypeModel struct {
	ID    int64  `db:"id"`
	Label string `db:"label"`
}

type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   int64      `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
