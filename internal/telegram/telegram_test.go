package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"imovelhub/server/internal/models"
)

type sentMessage struct {
	path    string
	payload map[string]interface{}
}

func newTelegramServer(t *testing.T, status int) (*httptest.Server, chan sentMessage) {
	sent := make(chan sentMessage, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		sent <- sentMessage{path: r.URL.Path, payload: payload}
		w.WriteHeader(status)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)
	return server, sent
}

func enabledService(t *testing.T, server *httptest.Server, filters models.NotificationFilters) *Service {
	s := NewService(nil)
	s.SetAPIBase(server.URL)
	s.UpdateConfig(&models.NotifierConfig{
		IsEnabled: true,
		BotToken:  "123:abc",
		ChatID:    "42",
		Filters:   datatypes.NewJSONType(filters),
	})
	return s
}

func sampleDevelopment() *models.Development {
	return &models.Development{
		ID:          7,
		Name:        "Residencial <Aurora>",
		TotalUnits:  10,
		SalesStatus: models.SalesStatus{Available: 2, Reserved: 2, Sold: 3},
	}
}

func TestNotifyUnitStatus(t *testing.T) {
	server, sent := newTelegramServer(t, http.StatusOK)
	s := enabledService(t, server, models.NotificationFilters{})

	block := "B"
	unit := &models.Unit{DevelopmentID: 7, UnitNumber: "101", Block: &block, Price: decimal.NewFromInt(450000), Status: models.UnitSold}

	err := s.NotifyUnitStatus(context.Background(), sampleDevelopment(), unit, models.UnitAvailable)
	require.NoError(t, err)

	msg := <-sent
	assert.Equal(t, "/bot123:abc/sendMessage", msg.path)
	assert.Equal(t, "42", msg.payload["chat_id"])
	assert.Equal(t, "HTML", msg.payload["parse_mode"])

	text := msg.payload["text"].(string)
	assert.Contains(t, text, "vendida")
	assert.Contains(t, text, "Residencial &lt;Aurora&gt;")
	assert.Contains(t, text, "101 (bloco B)")
	assert.Contains(t, text, "R$")
	assert.Contains(t, text, "50% vendido")
}

func TestShouldNotify(t *testing.T) {
	server, _ := newTelegramServer(t, http.StatusOK)
	s := enabledService(t, server, models.NotificationFilters{DevelopmentIDs: []uint{7}})

	unit := func(devID uint, status models.UnitStatus) *models.Unit {
		return &models.Unit{DevelopmentID: devID, Status: status}
	}

	assert.True(t, s.ShouldNotify(unit(7, models.UnitReserved), models.UnitAvailable))
	assert.True(t, s.ShouldNotify(unit(7, models.UnitSold), models.UnitReserved))
	assert.False(t, s.ShouldNotify(unit(7, models.UnitAvailable), models.UnitSold), "back to available is silent")
	assert.False(t, s.ShouldNotify(unit(7, models.UnitSold), models.UnitSold), "no change")
	assert.False(t, s.ShouldNotify(unit(8, models.UnitSold), models.UnitAvailable), "filtered development")

	s.UpdateConfig(nil)
	assert.False(t, s.ShouldNotify(unit(7, models.UnitSold), models.UnitAvailable), "disabled")
}

func TestSendMessage_Disabled(t *testing.T) {
	server, sent := newTelegramServer(t, http.StatusOK)
	s := NewService(nil)
	s.SetAPIBase(server.URL)

	assert.NoError(t, s.SendMessage(context.Background(), "hello"))
	assert.Len(t, sent, 0)
}

func TestSendTestMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		contains string
	}{
		{"Unauthorized", http.StatusUnauthorized, "invalid bot token"},
		{"Bad request", http.StatusBadRequest, "invalid chat ID"},
		{"Forbidden", http.StatusForbidden, "blocked"},
		{"Not found", http.StatusNotFound, "bot not found"},
		{"Server error", http.StatusInternalServerError, "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTelegramServer(t, tt.status)
			s := NewService(nil)
			s.SetAPIBase(server.URL)

			err := s.SendTestMessage(context.Background(), "123:abc", "42")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	s := NewService(nil)
	assert.Error(t, s.SendTestMessage(context.Background(), "", "42"))
	assert.Error(t, s.SendTestMessage(context.Background(), "123:abc", ""))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "***", MaskToken("abc"))
	assert.Equal(t, "******xyz9", MaskToken("12345:xyz9"))
}
