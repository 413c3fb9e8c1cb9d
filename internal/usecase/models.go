package usecase

import (
	"time"

	"github.com/google/uuid"
)

// PRODUCT USECASE

// CreateProductForm — данные формы создания товара. Все поля приходят строками, владелец в форму не входит.
type CreateProductForm struct {
	Title         string        `form:"title" validate:"required,max=55"`
	Description   string        `form:"description" validate:"required,max=255"`
	Price         string        `form:"price" validate:"required"`
	Quantity      string        `form:"quantity" validate:"required"`
	ProductTypeID string        `form:"product_type_id" validate:"required"`
	Image         *ProductImage `form:"-" validate:"-"`
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type, определённый по содержимому
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CategoryOption — элемент списка выбора категории.
type CategoryOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// INFRASTUCTURE

type UploadImageReq struct {
	Name  string
	Image ProductImage
}

// WriteRawMessageReq — уже сериализованное событие для брокера.
type WriteRawMessageReq struct {
	ProductID int64
	EventID   string
	EventType OutboxEventType
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const ProductCreated OutboxEventType = "product.created"

type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductCreatedEvent — содержимое события о создании товара.
type ProductCreatedEvent struct {
	EventID       string
	ProductID     int64
	ProductTypeID int64
	OwnerID       uuid.UUID
	Title         string
	CreatedAt     time.Time
}

// MAPPERS

func NewCategoryOption(label, value string) CategoryOption {
	return CategoryOption{
		Label: label,
		Value: value,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageReq(name string, image ProductImage) *UploadImageReq {
	return &UploadImageReq{
		Name:  name,
		Image: image,
	}
}

func NewWriteRawMessageReq(event *OutboxEvent) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: event.ProductID,
		EventID:   event.EventID,
		EventType: event.EventType,
		Payload:   event.Payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
