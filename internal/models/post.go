package models

import (
	"time"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// Post - объявление пользователя.
// Tier фиксируется в момент создания и не меняется при смене тарифа владельца:
// срок жизни объявления считается от тарифа, действовавшего при публикации.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"` // тип объявления или город, slug
	City      string    `json:"city,omitempty"`
	Tier      tier.Tier `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}
