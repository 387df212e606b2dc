package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/discord-sale-notifier/settings"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of settings.Repository
 * All options live in one hash, one field per option key
 * Field values are JSON so lists and maps round-trip unchanged
 */

// DefaultKey is the hash holding the options
const DefaultKey = "discord:options"

type Repository struct {
	client redis.Cmdable
	conn   *redis.Client
	key    string
}

// NewRepository creates a new Redis repository and checks the connection
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewFromClient(client, DefaultKey), nil
}

// NewFromClient wraps an existing client
func NewFromClient(client *redis.Client, key string) *Repository {
	return &Repository{
		client: client,
		conn:   client,
		key:    key,
	}
}

// GetOption decodes one option into dst; dst is untouched when the option is not set
func (r *Repository) GetOption(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.HGet(ctx, r.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting option %s: %w", key, err)
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding option %s: %w", key, err)
	}
	return true, nil
}

// SetOption stores one option
func (r *Repository) SetOption(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding option %s: %w", key, err)
	}
	if err := r.client.HSet(ctx, r.key, key, data).Err(); err != nil {
		return fmt.Errorf("setting option %s: %w", key, err)
	}
	return nil
}

// Load reads every option through GetOption; unset options keep their defaults
func (r *Repository) Load(ctx context.Context) (settings.Settings, error) {
	return settings.LoadFrom(ctx, r)
}

// Save writes every option inside MULTI/EXEC so readers never see a partial update
func (r *Repository) Save(ctx context.Context, s settings.Settings) error {
	_, err := r.conn.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return settings.SaveTo(ctx, &Repository{client: pipe, key: r.key}, s)
	})
	if err != nil {
		return fmt.Errorf("storing options: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.conn.Close()
}
