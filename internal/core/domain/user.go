package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an application user. Balance is the cached sum of the
// balances of all accounts owned by the user; it is derived state and is
// written only by the balance recalculation primitives.
type User struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Email        string          `json:"-"`
	PhotoURL     string          `json:"photoUrl,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	AuthProvider AuthProvider    `json:"-"`
	PasswordHash *string         `json:"-"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	Timestamps
}
