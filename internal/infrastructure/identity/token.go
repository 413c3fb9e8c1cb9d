package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type subjectKey struct{}

// WithSubject кладёт id проверенного пользователя в контекст.
func WithSubject(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectKey{}, id)
}

// SubjectFromCtx возвращает id пользователя, положенный WithSubject.
func SubjectFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(subjectKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// TokenVerifier проверяет HS256 access-токены провайдера идентификации.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret, issuer string, leeway time.Duration) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

// Verify проверяет подпись и сроки токена и возвращает subject как uuid.
func (v *TokenVerifier) Verify(tokenString string) (uuid.UUID, error) {
	const op = "TokenVerifier.Verify"

	claims := &jwt.RegisteredClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrUnauthenticated, err))
	}
	if !token.Valid {
		return uuid.Nil, e.Wrap(op, e.ErrUnauthenticated)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, e.Wrap(op, fmt.Errorf("%w: invalid subject", e.ErrUnauthenticated))
	}

	return id, nil
}

// Sign выпускает токен для subject. Используется в тестах и локальной отладке.
func (v *TokenVerifier) Sign(subject uuid.UUID, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
