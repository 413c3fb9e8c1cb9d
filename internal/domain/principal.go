package domain

import "github.com/google/uuid"

// Principal — аутентифицированный пользователь, от имени которого выполняется запрос.
type Principal struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
}
