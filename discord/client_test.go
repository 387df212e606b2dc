package discord_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/discord-sale-notifier/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() discord.Message {
	return discord.Message{Embeds: []discord.Embed{{
		Title: "🎉 New Sale!",
		Fields: []discord.Field{
			{Name: "Order Number", Value: "1042", Inline: true},
			{Name: "Items", Value: "Mug"},
		},
		Color: 16777215,
	}}}
}

func TestClient_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("posts JSON", func(t *testing.T) {
		var (
			gotMethod string
			gotType   string
			gotBody   []byte
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		err := discord.NewClient(time.Second).Send(ctx, srv.URL, sampleMessage())

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotType)
		assert.JSONEq(t, `{"embeds":[{"title":"🎉 New Sale!","fields":[
			{"name":"Order Number","value":"1042","inline":true},
			{"name":"Items","value":"Mug"}],"color":16777215}]}`, string(gotBody))
	})

	t.Run("non-2xx responses are not errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Invalid Form Body"}`))
		}))
		defer srv.Close()

		err := discord.NewClient(time.Second).Send(ctx, srv.URL, sampleMessage())

		require.NoError(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		err := discord.NewClient(time.Second).Send(ctx, url, sampleMessage())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "posting to webhook")
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		err := discord.NewClient(50*time.Millisecond).Send(ctx, srv.URL, sampleMessage())

		require.Error(t, err)
	})

	t.Run("invalid url", func(t *testing.T) {
		err := discord.NewClient(time.Second).Send(ctx, "://nope", sampleMessage())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating request")
	})
}

func TestMessage_JSON(t *testing.T) {
	t.Run("inline is omitted when false", func(t *testing.T) {
		data, err := json.Marshal(discord.Field{Name: "Items", Value: ""})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Items","value":""}`, string(data))
	})
}
