package entities

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Ошибки домена карточек.
var (
	ErrCardNotFound = errors.New("card not found")
	ErrInvalidCard  = errors.New("invalid card")
)

// Card - карточка пользователя. Owner задается при создании и не меняется.
type Card struct {
	ID        string
	Name      string
	Link      string
	Owner     string
	Likes     []string
	CreatedAt time.Time
}

// NewCard создает карточку без лайков.
func NewCard(name, link, owner string) *Card {
	return &Card{
		Name:  name,
		Link:  link,
		Owner: owner,
		Likes: []string{},
	}
}

// OwnedBy сообщает, принадлежит ли карточка пользователю.
func (c *Card) OwnedBy(userID string) bool {
	return c.Owner == userID
}

// LikedBy сообщает, поставил ли пользователь лайк.
func (c *Card) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate проверяет карточку по схеме хранения.
func (c *Card) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(MinTextLength, MaxTextLength)),
		validation.Field(&c.Link, validation.Required, validation.Match(ImageURLPattern).Error("must be a link to a png or jpg image")),
		validation.Field(&c.Owner, validation.Required, validation.Match(ObjectIDPattern)),
	)
}
