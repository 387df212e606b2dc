package settings

import (
	"context"
	"fmt"
)

type option struct {
	key   string
	value any
}

// options pairs every option key with a pointer into s, in storage order
func (s *Settings) options() []option {
	return []option{
		{OptionWebhookURL, &s.DefaultWebhookURL},
		{OptionOrderStatuses, &s.EnabledStatuses},
		{OptionStatusWebhooks, &s.StatusWebhooks},
		{OptionStatusColors, &s.StatusColors},
	}
}

// LoadFrom assembles Settings one option at a time through the get-with-default
// contract; an option that was never written keeps its zero value
func LoadFrom(ctx context.Context, store OptionStore) (Settings, error) {
	var s Settings
	for _, opt := range s.options() {
		if _, err := store.GetOption(ctx, opt.key, opt.value); err != nil {
			return Settings{}, fmt.Errorf("loading options: %w", err)
		}
	}
	return s, nil
}

// SaveTo writes every option of s through store
func SaveTo(ctx context.Context, store OptionStore, s Settings) error {
	for _, opt := range s.options() {
		if err := store.SetOption(ctx, opt.key, opt.value); err != nil {
			return fmt.Errorf("saving options: %w", err)
		}
	}
	return nil
}
