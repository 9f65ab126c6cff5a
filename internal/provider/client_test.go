package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *provider.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return provider.NewClient(&config.ProviderConfig{
		BaseURL:        server.URL,
		PhoneNumberID:  "10001",
		AccessToken:    "secret-token",
		Timeout:        2,
		Language:       "fr",
		CircuitBreaker: *breakerConfig(60),
	}, zap.NewNop())
}

func TestClient_Send(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		response     string
		wantErr      bool
		wantAccepted bool
		wantAsync    bool
		wantID       string
		wantCode     string
		wantMessage  string
	}{
		{
			name:         "accepted synchronously",
			status:       http.StatusOK,
			response:     `{"messaging_product":"whatsapp","messages":[{"id":"wamid.1"}]}`,
			wantAccepted: true,
			wantID:       "wamid.1",
		},
		{
			name:         "accepted for async delivery",
			status:       http.StatusOK,
			response:     `{"messages":[{"id":"wamid.2","message_status":"accepted"}]}`,
			wantAccepted: true,
			wantAsync:    true,
			wantID:       "wamid.2",
		},
		{
			name:        "explicit rejection",
			status:      http.StatusBadRequest,
			response:    `{"error":{"message":"Recipient not on WhatsApp","code":131026,"error_data":{"details":"undeliverable"}}}`,
			wantCode:    "131026",
			wantMessage: "(#131026) Recipient not on WhatsApp: undeliverable",
		},
		{
			name:     "server error",
			status:   http.StatusBadGateway,
			response: `upstream down`,
			wantErr:  true,
		},
		{
			name:     "throttled",
			status:   http.StatusTooManyRequests,
			response: `{"error":{"message":"rate limit","code":130429}}`,
			wantErr:  true,
		},
		{
			name:     "accepted without id",
			status:   http.StatusOK,
			response: `{}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/10001/messages", r.URL.Path)
				assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

				var body map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				raw, _ := json.Marshal(body)
				assert.Equal(t, "212661234567", gjson.GetBytes(raw, "to").String())
				assert.Equal(t, "lead_welcome", gjson.GetBytes(raw, "template.name").String())
				assert.Equal(t, "fr", gjson.GetBytes(raw, "template.language.code").String())
				assert.Equal(t, "Salma", gjson.GetBytes(raw, "template.components.0.parameters.0.text").String())

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			})

			res, err := client.Send(context.Background(), provider.SendRequest{
				Phone:     "+212661234567",
				Template:  "lead_welcome",
				Variables: []string{"Salma"},
			})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, res)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAccepted, res.Accepted)
			assert.Equal(t, tt.wantAsync, res.Async)
			assert.Equal(t, tt.wantID, res.MessageID)
			assert.Equal(t, tt.wantCode, res.ErrorCode)
			assert.Equal(t, tt.wantMessage, res.ErrorMessage)
		})
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, provider.SendRequest{Phone: "+212661234567", Template: "t"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Send_RejectionDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"opted out","code":131050}}`))
	})

	for i := 0; i < 10; i++ {
		res, err := client.Send(context.Background(), provider.SendRequest{Phone: "+212661234567", Template: "t"})
		require.NoError(t, err)
		assert.False(t, res.Accepted)
	}
	assert.Equal(t, provider.BreakerClosed, client.Breaker().GetState())
}

func TestClient_CheckContact(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		response  string
		wantErr   bool
		wantValid bool
		wantWaID  string
	}{
		{
			name:      "valid contact",
			status:    http.StatusOK,
			response:  `{"contacts":[{"input":"+212661234567","status":"valid","wa_id":"212661234567"}]}`,
			wantValid: true,
			wantWaID:  "212661234567",
		},
		{
			name:     "invalid contact",
			status:   http.StatusOK,
			response: `{"contacts":[{"input":"+212661234567","status":"invalid"}]}`,
		},
		{
			name:     "empty answer",
			status:   http.StatusOK,
			response: `{"contacts":[]}`,
			wantErr:  true,
		},
		{
			name:     "server error",
			status:   http.StatusServiceUnavailable,
			response: ``,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				assert.Equal(t, "/10001/contacts", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			})

			got, err := client.CheckContact(context.Background(), "+212661234567")
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantWaID, got.WaID)
		})
	}
}
