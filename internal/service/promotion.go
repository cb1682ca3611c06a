package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
)

//go:generate mockgen -source=promotion.go -destination=mocks/mock_promotion.go -package=mock_service

// UserRepository is the slice of the user store the promotion needs.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

// EventPublisher delivers domain events to whoever listens for them.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

var ErrEmptyEmail = errors.New("email is required")

// RoutingKeyUserPromoted is the key user_promoted events are published with.
const RoutingKeyUserPromoted = "user.promoted"

type UserPromotedEvent struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Source     string    `json:"source"`
	PromotedAt time.Time `json:"promotedAt"`
}

// PromotionService flips the admin flag of an account directly in the
// store. It does not go through the HTTP API or its authorization checks;
// it is meant for operators who already hold the database credentials.
type PromotionService struct {
	repo   UserRepository
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewPromotionService builds the service. events may be nil.
func NewPromotionService(repo UserRepository, events EventPublisher, log *zap.Logger) *PromotionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PromotionService{repo: repo, events: events, log: log, now: time.Now}
}

// Promote grants the admin flag to the account registered under email.
// The lookup error is returned unchanged when the account does not exist,
// so callers can match it with errors.Is. The email is matched exactly as
// given.
func (s *PromotionService) Promote(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", email, err)
	}
	if user.IsAdmin {
		s.log.Info("user already has admin flag", zap.String("email", email))
	}

	if err := s.repo.SetAdmin(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("save user %q: %w", email, err)
	}
	user.IsAdmin = true

	if s.events != nil {
		event := UserPromotedEvent{
			UserID:     user.ID,
			Email:      user.Email,
			Source:     "promote-user",
			PromotedAt: s.now().UTC(),
		}
		// The flag is already persisted; a lost event must not undo that.
		if err := s.events.PublishJSON(ctx, RoutingKeyUserPromoted, event); err != nil {
			s.log.Warn("publish user_promoted failed", zap.String("email", email), zap.Error(err))
		}
	}

	return user, nil
}
