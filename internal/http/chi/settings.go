package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/marcelsud/discord-sale-notifier/order"
	"github.com/marcelsud/discord-sale-notifier/settings"
	"github.com/xeipuuv/gojsonschema"
)

/* settingsDocument is the admin representation of Settings
 * Field names are the stored option names
 */
type settingsDocument struct {
	WebhookURL     string            `json:"discord_webhook_url"`
	OrderStatuses  []string          `json:"discord_order_statuses"`
	StatusWebhooks map[string]string `json:"discord_status_webhooks"`
	StatusColors   map[string]string `json:"discord_status_colors"`
}

// statusResponse is one row of the per-status settings table
type statusResponse struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Enabled    bool   `json:"enabled"`
	WebhookURL string `json:"webhook_url"`
	Color      string `json:"color"`
}

type validationResponse struct {
	Errors []string `json:"errors"`
}

const settingsSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"discord_webhook_url": {"type": "string"},
		"discord_order_statuses": {
			"type": "array",
			"items": {"type": "string", "pattern": "^wc-.+"},
			"uniqueItems": true
		},
		"discord_status_webhooks": {
			"type": "object",
			"propertyNames": {"pattern": "^wc-.+"},
			"additionalProperties": {"type": "string"}
		},
		"discord_status_colors": {
			"type": "object",
			"propertyNames": {"pattern": "^wc-.+"},
			"additionalProperties": {"type": "string", "pattern": "^(#[0-9a-fA-F]{6})?$"}
		}
	}
}`

var settingsSchema = mustSchema(settingsSchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("compiling settings schema: %v", err))
	}
	return schema
}

func toDocument(st settings.Settings) settingsDocument {
	doc := settingsDocument{
		WebhookURL:     st.DefaultWebhookURL,
		OrderStatuses:  st.EnabledStatuses,
		StatusWebhooks: st.StatusWebhooks,
		StatusColors:   st.StatusColors,
	}
	if doc.OrderStatuses == nil {
		doc.OrderStatuses = []string{}
	}
	if doc.StatusWebhooks == nil {
		doc.StatusWebhooks = map[string]string{}
	}
	if doc.StatusColors == nil {
		doc.StatusColors = map[string]string{}
	}
	return doc
}

func (d settingsDocument) toSettings() settings.Settings {
	return settings.Settings{
		DefaultWebhookURL: d.WebhookURL,
		EnabledStatuses:   d.OrderStatuses,
		StatusWebhooks:    d.StatusWebhooks,
		StatusColors:      d.StatusColors,
	}
}

// getSettings handles GET /v1/settings
func getSettings(settingsService settings.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := settingsService.Get(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toDocument(st))
	})
}

// maxSettingsBody caps PUT /v1/settings the same way webhook deliveries are capped
const maxSettingsBody = 1 << 20

// putSettings handles PUT /v1/settings
// The body replaces the whole configuration
func putSettings(settingsService settings.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result, err := settingsSchema.Validate(gojsonschema.NewBytesLoader(body))
		if err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if !result.Valid() {
			resp := validationResponse{}
			for _, e := range result.Errors() {
				resp.Errors = append(resp.Errors, e.String())
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}

		var doc settingsDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = settingsService.Update(r.Context(), doc.toSettings())
		switch {
		case errors.Is(err, settings.ErrInvalid):
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: []string{err.Error()}})
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// getStatuses handles GET /v1/statuses
// Built-in statuses come first in WooCommerce order, then any custom status the settings mention
func getStatuses(settingsService settings.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := settingsService.Get(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		statuses := order.Statuses()
		for _, key := range customStatusKeys(st) {
			statuses = append(statuses, order.ParseStatus(key))
		}

		result := make([]statusResponse, 0, len(statuses))
		for _, s := range statuses {
			key := s.Key()
			result = append(result, statusResponse{
				Key:        key,
				Label:      s.Label(),
				Enabled:    st.IsEnabled(key),
				WebhookURL: st.StatusWebhooks[key],
				Color:      st.ColorStringFor(key),
			})
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func customStatusKeys(st settings.Settings) []string {
	var keys []string
	add := func(key string) {
		if order.ParseStatus(key).IsBuiltin() || slices.Contains(keys, key) {
			return
		}
		keys = append(keys, key)
	}
	for _, key := range st.EnabledStatuses {
		add(key)
	}
	for key := range st.StatusWebhooks {
		add(key)
	}
	for key := range st.StatusColors {
		add(key)
	}
	slices.Sort(keys)
	return keys
}
