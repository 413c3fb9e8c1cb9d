package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[uuid.UUID]*domain.Principal
	err   error
	calls int
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.Principal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func TestVerifyRoundTrip(t *testing.T) {
	v := NewTokenVerifier("secret", "auth.example", time.Second)
	id := uuid.New()

	token, err := v.Sign(id, "auth.example", time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejects(t *testing.T) {
	v := NewTokenVerifier("secret", "auth.example", 0)
	id := uuid.New()

	expired, err := v.Sign(id, "auth.example", -time.Minute)
	require.NoError(t, err)

	wrongIssuer, err := v.Sign(id, "someone.else", time.Minute)
	require.NoError(t, err)

	otherKey, err := NewTokenVerifier("other", "", 0).Sign(id, "auth.example", time.Minute)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "auth.example",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"issuer":       wrongIssuer,
		"signature":    otherKey,
		"subject":      badSubject,
		"garbage":      "abc.def.ghi",
		"empty string": "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.ErrorIs(t, err, e.ErrUnauthenticated)
		})
	}
}

func TestProviderCurrentPrincipal(t *testing.T) {
	id := uuid.New()
	principal := &domain.Principal{ID: id, Email: "a@b.c"}
	users := &fakeUsers{users: map[uuid.UUID]*domain.Principal{id: principal}}
	p := NewProvider(users)

	got, err := p.CurrentPrincipal(WithSubject(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	_, err = p.CurrentPrincipal(WithSubject(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, 2, users.calls)
}

func TestProviderAbsent(t *testing.T) {
	users := &fakeUsers{users: map[uuid.UUID]*domain.Principal{}}
	p := NewProvider(users)

	got, err := p.CurrentPrincipal(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, users.calls)

	got, err = p.CurrentPrincipal(WithSubject(context.Background(), uuid.New()))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProviderStoreError(t *testing.T) {
	storeErr := errors.New("db down")
	p := NewProvider(&fakeUsers{err: storeErr})

	_, err := p.CurrentPrincipal(WithSubject(context.Background(), uuid.New()))
	assert.ErrorIs(t, err, storeErr)
}
