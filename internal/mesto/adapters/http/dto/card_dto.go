package dto

import (
	"time"

	"mesto/internal/mesto/domain/entities"
)

// CreateCardRequest содержит данные новой карточки.
type CreateCardRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// CardResponse - карточка в ответе API.
type CardResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCardResponse создает ответ с карточкой. Likes никогда не равен null.
func NewCardResponse(c *entities.Card) CardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Link:      c.Link,
		Owner:     c.Owner,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}
}

// NewCardList создает список карточек.
func NewCardList(cards []*entities.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardResponse(c))
	}
	return out
}
