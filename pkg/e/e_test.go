package e

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors(t *testing.T) {
	v := ValidationErrors{}
	v.Add("title", "is required")
	v.Add("title", "too long")
	v.Add("price", "invalid")

	var err error = v
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(Wrap("op", err), ErrValidation))
	assert.Equal(t, "is required", v["title"])
	assert.Equal(t, "validation failed: price: invalid; title: is required", err.Error())

	var got ValidationErrors
	require.True(t, errors.As(Wrap("op", err), &got))
	assert.Len(t, got, 2)
}

func TestStoreError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	err := Wrap("outer", NewStoreError("ProductRepo.Add", fk))

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.True(t, storeErr.IsConstraintViolation())
	assert.ErrorIs(t, err, fk)

	conn := NewStoreError("ProductRepo.List", errors.New("connection refused"))
	assert.False(t, conn.IsConstraintViolation())
	assert.Contains(t, conn.Error(), "ProductRepo.List")
}
