package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/repositories"
	apperrors "medical-inventory/pkg/errors"

	"github.com/google/uuid"
)

const keyPrefix = "session:"

// Session - вошедший пользователь. Живёт в кеше до ExpiresAt,
// refresh-токен продлевает срок, выход удаляет запись.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store struct {
	cache repositories.CacheRepositoryInterface
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(cache repositories.CacheRepositoryInterface, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl, now: time.Now}
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Create открывает сессию для пользователя.
func (s *Store) Create(ctx context.Context, user dto.UserDTO) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName(),
		Role:      user.Rol,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get возвращает живую сессию; удалённая или просроченная - ErrSessionExpired.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.cache.Get(ctx, keyPrefix+id)
	if errors.Is(err, repositories.ErrCacheMiss) {
		return nil, apperrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать сессию: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("повреждённая запись сессии: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return &sess, nil
}

// Refresh продлевает сессию на полный срок.
func (s *Store) Refresh(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.ExpiresAt = s.now().Add(s.ttl)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Del(ctx, keyPrefix+id)
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return apperrors.ErrSessionExpired
	}
	if err := s.cache.Set(ctx, keyPrefix+sess.ID, raw, ttl); err != nil {
		return fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	return nil
}
