package models

import (
	"time"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Tier         tier.Tier `json:"tier"` // текущий тариф, меняется при апгрейде
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy without the password hash, safe to hand to clients.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
