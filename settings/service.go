package settings

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalid marks settings rejected by Validate
var ErrInvalid = errors.New("invalid settings")

// UseCase defines the operations of the settings admin surface
type UseCase interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}

type Service struct {
	Repo Repository
}

// NewService creates a new settings service
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Get returns the stored settings
func (s *Service) Get(ctx context.Context) (Settings, error) {
	st, err := s.Repo.Load(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return st, nil
}

// Update validates and stores new settings
func (s *Service) Update(ctx context.Context, st Settings) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("validating settings: %w: %w", ErrInvalid, err)
	}
	if err := s.Repo.Save(ctx, st.normalized()); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// normalized replaces nil collections so stored documents are never null
func (s Settings) normalized() Settings {
	if s.EnabledStatuses == nil {
		s.EnabledStatuses = []string{}
	}
	if s.StatusWebhooks == nil {
		s.StatusWebhooks = map[string]string{}
	}
	if s.StatusColors == nil {
		s.StatusColors = map[string]string{}
	}
	return s
}
