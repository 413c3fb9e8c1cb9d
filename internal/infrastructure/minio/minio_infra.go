package minio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/jitter"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/google/uuid"
)

const (
	cleanupAttempts    = 3
	cleanupBaseBackoff = time.Second
	cleanupMaxBackoff  = 4 * time.Second
	cleanupTimeout     = 30 * time.Second
)

// imageExtensions — расширение объекта по MIME-типу изображения.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MinioInfrastructure загружает изображения товаров и удаляет осиротевшие объекты.
type MinioInfrastructure struct {
	imageRepo    usecase.ImageRepository
	bucket       string
	maxImageSize int64
	logger       logger.Logger
	shutdownCtx  context.Context
	wg           sync.WaitGroup
	backoff      func(attempt int) time.Duration
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, bucket string, maxImageSize int64,
	logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:    imageRepo,
		bucket:       bucket,
		maxImageSize: maxImageSize,
		logger:       logger,
		shutdownCtx:  shutdownCtx,
		backoff: func(attempt int) time.Duration {
			return jitter.ExponentialBackoff(cleanupBaseBackoff, cleanupMaxBackoff, attempt, jitter.DefaultJitter)
		},
	}
}

// UploadImage загружает изображение товара и возвращает ключ объекта вида <товар>/<файл>-<uuid>.<ext>.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (string, error) {
	const op = "MinioInfrastructure.UploadImage"

	image := req.Image
	if m.maxImageSize > 0 && int64(len(image.Data)) > m.maxImageSize {
		return "", e.Wrap(op, e.ErrFileTooLarge)
	}

	ext, ok := imageExtensions[image.MimeType]
	if !ok {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, e.ErrUnsupportedMediaType))
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s-%s.%s", objectPrefix(req.Name), objectPrefix(baseName(image.Name)), imageID, ext)

	key, err := m.imageRepo.Upload(ctx, domain.NewImage(imageID, m.bucket, objKey, image.Data, image.MimeType))
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", image.Name, err))
	}

	return key, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет объекты с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up %d uploaded keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.imageRepo.Delete(ctx, m.bucket, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			select {
			case <-time.After(m.backoff(attempt)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// objectPrefix приводит произвольную строку к безопасному сегменту ключа объекта.
func objectPrefix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.' || r == '/':
			return '-'
		default:
			return -1
		}
	}, s)
	if s == "" {
		return "product"
	}

	return s
}

func baseName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}

	return name
}
