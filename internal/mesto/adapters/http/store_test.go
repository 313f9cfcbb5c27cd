package http_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/ports/repositories"
)

// memoryStore - хранилище в памяти с теми же типизированными ошибками,
// что и адаптер Postgres.
type memoryStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entities.User
	cards map[string]*entities.Card
	order []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[string]*entities.User),
		cards: make(map[string]*entities.Card),
	}
}

func (s *memoryStore) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

func (s *memoryStore) cardCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

func (s *memoryStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func copyUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

func copyCard(card *entities.Card) *entities.Card {
	c := *card
	c.Likes = slices.Clone(card.Likes)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return &c
}

type userStore struct{ *memoryStore }

func (s userStore) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repositories.ErrDuplicateEmail
		}
	}

	created := copyUser(user)
	created.ID = s.nextID()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.users[created.ID] = created
	return copyUser(created), nil
}

func (s userStore) FindByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s userStore) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (s userStore) List(context.Context) ([]*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (s userStore) UpdateProfile(_ context.Context, id, name, about string) (*entities.User, error) {
	if err := entities.ValidateProfile(name, about); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrInvalidRecord, err)
	}
	return s.update(id, func(u *entities.User) { u.Name, u.About = name, about })
}

func (s userStore) UpdateAvatar(_ context.Context, id, avatar string) (*entities.User, error) {
	if err := entities.ValidateAvatar(avatar); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrInvalidRecord, err)
	}
	return s.update(id, func(u *entities.User) { u.Avatar = avatar })
}

func (s userStore) update(id string, apply func(*entities.User)) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	apply(u)
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

type cardStore struct{ *memoryStore }

func (s cardStore) Create(_ context.Context, card *entities.Card) (*entities.Card, error) {
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[card.Owner]; !ok {
		return nil, entities.ErrUserNotFound
	}

	created := copyCard(card)
	created.ID = s.nextID()
	created.CreatedAt = time.Now().UTC()
	s.cards[created.ID] = created
	s.order = append(s.order, created.ID)
	return copyCard(created), nil
}

func (s cardStore) FindByID(_ context.Context, id string) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, entities.ErrCardNotFound
	}
	return copyCard(card), nil
}

func (s cardStore) List(context.Context) ([]*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Card, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyCard(s.cards[id]))
	}
	return out, nil
}

func (s cardStore) Delete(_ context.Context, id string) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, entities.ErrCardNotFound
	}
	delete(s.cards, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return copyCard(card), nil
}

func (s cardStore) AddLike(_ context.Context, cardID, userID string) (*entities.Card, error) {
	return s.likes(cardID, func(c *entities.Card) {
		if !c.LikedBy(userID) {
			c.Likes = append(c.Likes, userID)
		}
	})
}

func (s cardStore) RemoveLike(_ context.Context, cardID, userID string) (*entities.Card, error) {
	return s.likes(cardID, func(c *entities.Card) {
		c.Likes = slices.DeleteFunc(c.Likes, func(v string) bool { return v == userID })
	})
}

func (s cardStore) likes(cardID string, apply func(*entities.Card)) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok {
		return nil, entities.ErrCardNotFound
	}
	apply(card)
	return copyCard(card), nil
}
