package e

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("not found")

	// 401 Unauthorized
	ErrUnauthenticated = fmt.Errorf("unauthenticated")

	// 400 Bad Request
	ErrValidation           = fmt.Errorf("validation failed")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ValidationErrors — ошибки валидации формы, ключ — имя поля.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add добавляет ошибку поля, сохраняя первую.
func (v ValidationErrors) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// StoreError — ошибка хранилища (соединение или нарушение ограничения).
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (s *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", s.Op, s.Err)
}

func (s *StoreError) Unwrap() error {
	return s.Err
}

// IsConstraintViolation сообщает, что PostgreSQL отклонил запись по ограничению (класс SQLSTATE 23).
func (s *StoreError) IsConstraintViolation() bool {
	var pgErr *pgconn.PgError
	if errors.As(s.Err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	return false
}
