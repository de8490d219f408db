// Package domain defines the roster rules for extracurricular activities.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/extracurricular/internal/events"
	"example.com/extracurricular/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity has the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrConflict groups roster membership conflicts.
	ErrConflict = errors.New("roster conflict")
	// ErrAlreadySignedUp is returned when the email is already on the roster.
	ErrAlreadySignedUp = fmt.Errorf("%w: student is already signed up", ErrConflict)
	// ErrNotSignedUp is returned when the email is not on the roster.
	ErrNotSignedUp = fmt.Errorf("%w: student is not signed up for this activity", ErrConflict)
	// ErrInvalidEmail is returned for a blank email.
	ErrInvalidEmail = errors.New("email is required")
)

// Registry captures roster storage. Implementations return copies, never shared state.
type Registry interface {
	List(ctx context.Context) (map[string]Activity, error)
	Get(ctx context.Context, name string) (*Activity, error)
	Signup(ctx context.Context, name, email string) (*Activity, error)
	Unregister(ctx context.Context, name, email string) (*Activity, error)
}

// EventPublisher receives roster change notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event events.RosterChanged) error
}

// NoopPublisher discards events.
type NoopPublisher struct{}

// Publish performs no action.
func (NoopPublisher) Publish(context.Context, events.RosterChanged) error { return nil }

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithPublisher sets the destination for roster events.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger overrides the logger used to report publish failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service orchestrates signup and unregister workflows.
type Service struct {
	registry  Registry
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a Service over registry.
func NewService(registry Registry, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		publisher: NoopPublisher{},
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.registry.List(ctx)
}

// GetActivity fetches a single activity by name.
func (s *Service) GetActivity(ctx context.Context, name string) (*Activity, error) {
	activity, err := s.registry.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// Signup adds email to the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) (*Activity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		observability.RecordRejection("invalid_email")
		return nil, ErrInvalidEmail
	}

	activity, err := s.registry.Signup(ctx, name, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return nil, err
	}

	observability.RecordSignup(activity.Name, len(activity.Participants))
	s.publish(ctx, events.ActionSignedUp, *activity, email)
	return activity, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) (*Activity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		observability.RecordRejection("invalid_email")
		return nil, ErrInvalidEmail
	}

	activity, err := s.registry.Unregister(ctx, name, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return nil, err
	}

	observability.RecordUnregistration(activity.Name, len(activity.Participants))
	s.publish(ctx, events.ActionUnregistered, *activity, email)
	return activity, nil
}

func (s *Service) publish(ctx context.Context, action events.Action, activity Activity, email string) {
	event := events.NewRosterChanged(activity.Name, email, action, len(activity.Participants), s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("roster event not published",
			zap.String("event_id", event.EventID),
			zap.String("activity", activity.Name),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, ErrNotSignedUp):
		return "not_signed_up"
	default:
		return "error"
	}
}
