// Package closer освобождает ресурсы приложения при остановке в обратном порядке их регистрации.
package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/product-catalog/pkg/logger"
)

const defaultForcedTimeout = 2 * time.Second

// Func — функция освобождения ресурса.
type Func func(ctx context.Context) error

type resource struct {
	name  string
	close Func
}

// Closer хранит зарегистрированные ресурсы и закрывает их один раз.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	resources     []resource
	forcedTimeout time.Duration
	log           logger.Logger
	err           error
}

// NewCloser создаёт Closer. forcedTimeout — сколько отводится на принудительное
// закрытие ресурсов, до которых не дошла очередь до отмены контекста Close.
func NewCloser(log logger.Logger, forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
		log:           log,
	}
}

// Add регистрирует ресурс под именем name.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resources = append(c.resources, resource{name: name, close: f})
}

// Close закрывает ресурсы в порядке LIFO. Если ctx отменяется раньше,
// оставшиеся ресурсы закрываются параллельно с собственным таймаутом.
// Повторные вызовы возвращают результат первого.
func (c *Closer) Close(ctx context.Context) error {
	c.once.Do(func() {
		c.mu.Lock()
		resources := append([]resource(nil), c.resources...)
		c.mu.Unlock()

		left, errs := c.closeInOrder(ctx, resources)
		if len(left) > 0 {
			c.log.Warnf("shutdown deadline exceeded, forcing %d resource(s)", len(left))
			errs = append(errs, c.forceClose(left)...)
		}

		c.err = errors.Join(errs...)
	})

	return c.err
}

// closeInOrder возвращает ресурсы, которые не успели закрыться до отмены ctx.
func (c *Closer) closeInOrder(ctx context.Context, resources []resource) ([]resource, []error) {
	var errs []error

	for i := len(resources) - 1; i >= 0; i-- {
		res := resources[i]
		done := make(chan error, 1)

		go func() {
			done <- res.close(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				c.log.Errorf(err, "failed to close %s", res.name)
				errs = append(errs, fmt.Errorf("%s: %w", res.name, err))
				continue
			}
			c.log.Debugf("%s closed", res.name)
		case <-ctx.Done():
			// Ресурс i ещё закрывается, повторяем его вместе с остальными.
			return resources[:i+1], errs
		}
	}

	return nil, errs
}

func (c *Closer) forceClose(resources []resource) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, res := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := res.close(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s (forced): %w", res.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
