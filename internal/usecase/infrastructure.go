package usecase

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
)

// IdentityProvider отдаёт текущего пользователя запроса. (nil, nil) — пользователь не аутентифицирован.
type IdentityProvider interface {
	CurrentPrincipal(ctx context.Context) (*domain.Principal, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует события для публикации в брокер.
type EventEncoder interface {
	EncodeProductCreated(event *ProductCreatedEvent) ([]byte, error)
}
