package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/google/uuid"
)

type fakeStore struct {
	mu       sync.Mutex
	products []domain.Product
	types    []domain.ProductType
	owners   map[uuid.UUID]domain.Principal
	nextID   int64
	writes   int
	reads    int
	addErr   error
	listErr  error
}

func newFakeStore(types ...domain.ProductType) *fakeStore {
	return &fakeStore{
		types:  types,
		owners: make(map[uuid.UUID]domain.Principal),
		nextID: 1,
	}
}

func (f *fakeStore) seed(productTypeID int64, owner domain.Principal) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.owners[owner.ID] = owner
	pr := domain.Product{
		ID:            f.nextID,
		Title:         "seeded",
		Description:   "seeded product",
		Price:         100,
		Quantity:      1,
		ProductTypeID: productTypeID,
		OwnerID:       owner.ID,
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.nextID++
	f.products = append(f.products, pr)
	return pr
}

func (f *fakeStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeStore) GetProductWithOwner(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	for _, pr := range f.products {
		if pr.ID == id {
			owner := f.owners[pr.OwnerID]
			pr.Owner = &owner
			return &pr, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) AddProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.addErr != nil {
		return nil, f.addErr
	}
	pr := *product
	pr.ID = f.nextID
	pr.CreatedAt = time.Now().UTC()
	f.nextID++
	f.products = append(f.products, pr)
	return &pr, nil
}

func (f *fakeStore) ListProductTypes(_ context.Context) ([]domain.ProductType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.ProductType, len(f.types))
	copy(out, f.types)
	return out, nil
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeOutbox struct {
	events    []*OutboxEvent
	createErr error
}

func (f *fakeOutbox) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutbox) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkAsProcessed(context.Context, int64) error { return nil }

func (f *fakeOutbox) MarkAsPending(context.Context, int64) error { return nil }

func (f *fakeOutbox) ReclaimStale(context.Context, time.Duration) (int64, error) { return 0, nil }

type fakeCache struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	getErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: make(map[int64]domain.Product)}
}

func (f *fakeCache) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	pr, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &pr, nil
}

func (f *fakeCache) SetProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeCache) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.products[id]
	return ok
}

type fakeImages struct {
	mu        sync.Mutex
	uploaded  []string
	cleaned   []string
	uploadErr error
}

func (f *fakeImages) UploadImage(_ context.Context, req *UploadImageReq) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := req.Name + "/" + req.Image.Name
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeImages) CleanupImages(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, keys...)
}

type fakeEncoder struct{}

func (fakeEncoder) EncodeProductCreated(event *ProductCreatedEvent) ([]byte, error) {
	return []byte(event.EventID), nil
}

type fakeIdentity struct {
	principal *domain.Principal
	err       error
	calls     int
}

func (f *fakeIdentity) CurrentPrincipal(context.Context) (*domain.Principal, error) {
	f.calls++
	return f.principal, f.err
}

type testDeps struct {
	store    *fakeStore
	tx       *fakeTxManager
	outbox   *fakeOutbox
	cache    *fakeCache
	images   *fakeImages
	identity *fakeIdentity
}

func newTestUC(store *fakeStore, principal *domain.Principal) (*ProductUseCase, *testDeps) {
	deps := &testDeps{
		store:    store,
		tx:       &fakeTxManager{},
		outbox:   &fakeOutbox{},
		cache:    newFakeCache(),
		images:   &fakeImages{},
		identity: &fakeIdentity{principal: principal},
	}

	uc := NewProductUC(
		deps.store,
		deps.tx,
		deps.outbox,
		deps.cache,
		deps.images,
		fakeEncoder{},
		deps.identity,
		logger.NewNopLogger(),
	)

	return uc, deps
}
