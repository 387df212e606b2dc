package main

import (
	"testing"

	"github.com/marcelsud/discord-sale-notifier/notification"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(notification.Sent, false))
	assert.Equal(t, 0, exitCode(notification.Sent, true))
	assert.Equal(t, 0, exitCode(notification.StatusNotEnabled, false))
	assert.Equal(t, 2, exitCode(notification.StatusNotEnabled, true))
	assert.Equal(t, 2, exitCode(notification.DeliveryFailed, false))
	assert.Equal(t, 2, exitCode(notification.DeliveryFailed, true))

	t.Run("every skip outcome follows strict", func(t *testing.T) {
		for _, o := range []notification.Outcome{
			notification.OrderNotFound,
			notification.StatusNotEnabled,
			notification.NoWebhookURL,
			notification.SettingsUnavailable,
		} {
			assert.Equal(t, 0, exitCode(o, false), o.String())
			assert.Equal(t, 2, exitCode(o, true), o.String())
		}
	})
}
