package settings

import "context"

/* Small, focused interfaces
 * The dispatcher only needs a Reader; the admin surface needs the Writer too
 */

// Reader loads the current settings; called on every notification, never cached
type Reader interface {
	Load(ctx context.Context) (Settings, error)
}

// Writer replaces the stored settings
type Writer interface {
	Save(ctx context.Context, s Settings) error
}

// OptionStore is the named-option contract: get with default, set
// GetOption decodes the stored value into dst and reports whether it existed;
// when it did not, dst is left untouched so callers pre-fill it with the default
type OptionStore interface {
	GetOption(ctx context.Context, key string, dst any) (bool, error)
	SetOption(ctx context.Context, key string, value any) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
