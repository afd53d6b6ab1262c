package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type BalanceResponse struct {
	Current float64 `json:"current"`
	Future  float64 `json:"future"`
}

type CashoutRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type CashoutResponse struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Remaining     float64   `json:"remaining"`
}
