package models

import (
	"time"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// Subscription фиксирует смену тарифа пользователя.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	From      tier.Tier `json:"from"`
	To        tier.Tier `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}
