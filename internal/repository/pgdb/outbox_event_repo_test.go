package pgdb

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxEventRepo_CreateRequiresTransaction(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	_, err := repo.Create(context.Background(), usecase.NewOutboxEvent("evt-1", usecase.ProductCreated, 1, []byte("x")))
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestOutboxEventRepo_CreateNotifies(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	event := usecase.NewOutboxEvent("evt-1", usecase.ProductCreated, 5, []byte("payload"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs("evt-1", "product.created", int64(5), []byte("payload"), "pending", pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))
	mock.ExpectExec(regexp.QuoteMeta("NOTIFY outbox_pending")).
		WillReturnResult(pgxmock.NewResult("NOTIFY", 0))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	created, err := repo.Create(tr.WithTx(ctx, tx), event)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, usecase.Pending, created.Status)
	assert.Equal(t, usecase.ProductCreated, created.EventType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxEventRepo_GetAndMarkAsProcessing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs("processing", "pending", 10).
		WillReturnRows(mock.NewRows([]string{
			"id", "event_id", "event_type", "product_id", "payload", "status", "created_at", "processed_at",
		}).AddRow(int64(3), "evt-3", "product.created", int64(9), []byte("p"), "processing", createdAt, (*time.Time)(nil)))
	mock.ExpectCommit()

	events, err := repo.GetAndMarkAsProcessing(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(3), events[0].ID)
	assert.Equal(t, usecase.Processing, events[0].Status)
	assert.Nil(t, events[0].ProcessedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxEventRepo_GetAndMarkAsProcessingRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs("processing", "pending", 10).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.GetAndMarkAsProcessing(context.Background(), 10)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxEventRepo_MarkTransitions(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	mock.ExpectExec(regexp.QuoteMeta("SET status = $1, processed_at = NOW()")).
		WithArgs("processed", int64(3), "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = $1, processing_started_at = NULL")).
		WithArgs("pending", int64(4), "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkAsProcessed(context.Background(), 3))
	require.NoError(t, repo.MarkAsPending(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxEventRepo_ReclaimStale(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOutboxEventRepo(mock, converter.OutboxEventConverter{})

	mock.ExpectExec(regexp.QuoteMeta("make_interval(secs => $3)")).
		WithArgs("pending", "processing", float64(300)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.ReclaimStale(context.Background(), 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
