package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcelsud/discord-sale-notifier/settings"
	"gopkg.in/yaml.v3"
)

/* Repository keeps settings in a YAML file
 * The file is re-read on every Load so edits made by hand are picked up
 * without a restart; Save writes a temp file and renames it over the old one
 */

// Document represents the structure of settings.yaml
type Document struct {
	WebhookURL     string            `yaml:"discord_webhook_url"`
	OrderStatuses  []string          `yaml:"discord_order_statuses"`
	StatusWebhooks map[string]string `yaml:"discord_status_webhooks"`
	StatusColors   map[string]string `yaml:"discord_status_colors"`
}

type Repository struct {
	path string
	mu   sync.Mutex // serializes writers
}

// NewRepository creates a file repository; a missing file reads as empty settings
// DefaultFileMode applies when Save creates the settings file
const DefaultFileMode fs.FileMode = 0o644

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load reads and parses the settings file
func (r *Repository) Load(ctx context.Context) (settings.Settings, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings.Settings{}, nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("reading settings file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a settings document
func Parse(data []byte) (settings.Settings, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return settings.Settings{}, fmt.Errorf("parsing settings YAML: %w", err)
	}

	return settings.Settings{
		DefaultWebhookURL: doc.WebhookURL,
		EnabledStatuses:   doc.OrderStatuses,
		StatusWebhooks:    doc.StatusWebhooks,
		StatusColors:      doc.StatusColors,
	}, nil
}

// Save replaces the settings file atomically
func (r *Repository) Save(ctx context.Context, s settings.Settings) error {
	doc := Document{
		WebhookURL:     s.DefaultWebhookURL,
		OrderStatuses:  s.EnabledStatuses,
		StatusWebhooks: s.StatusWebhooks,
		StatusColors:   s.StatusColors,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding settings YAML: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(r.mode()); err != nil {
		tmp.Close()
		return fmt.Errorf("setting settings file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing settings file: %w", err)
	}

	return nil
}

// mode keeps the permissions of the file being replaced; new files get DefaultFileMode
func (r *Repository) mode() fs.FileMode {
	info, err := os.Stat(r.path)
	if err != nil {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}

// Close is a no-op; the file is not held open
func (r *Repository) Close(ctx context.Context) error {
	return nil
}
