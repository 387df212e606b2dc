//go:build integration

package redis_test

import (
	"context"
	"sync"
	"testing"

	"github.com/marcelsud/discord-sale-notifier/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryIntegration_SaveLoad(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	repo := CreateTestRepository(t, rc.Addr)
	defer repo.Close(ctx)

	want := settings.Settings{
		DefaultWebhookURL: "https://discord.example/hook",
		EnabledStatuses:   []string{"wc-completed"},
		StatusWebhooks:    map[string]string{},
		StatusColors:      map[string]string{"wc-completed": "#1a2b3c"},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositoryIntegration_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	repo := CreateTestRepository(t, rc.Addr)
	defer repo.Close(ctx)

	require.NoError(t, repo.Save(ctx, settings.Settings{
		DefaultWebhookURL: "https://discord.example/hook",
		EnabledStatuses:   []string{"wc-completed"},
	}))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := repo.Load(ctx)
			if err != nil {
				errs <- err
				return
			}
			if !s.IsEnabled("wc-completed") {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
