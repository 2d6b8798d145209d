package models

// Ad - рекламный баннер из статического списка.
type Ad struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Link        string `json:"link" yaml:"link"`
}
