package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypePrinter  UserType = "printer"
	UserTypeBuyer    UserType = "buyer"
	UserTypeDesigner UserType = "designer"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	UserType     UserType
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Balance is the ledger position of a user: Current covers settled funds,
// Future covers funds still held until their campaign settles.
type Balance struct {
	UserId  uuid.UUID
	Current float64
	Future  float64
}
