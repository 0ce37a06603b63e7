package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/models"
)

const DefaultAPIBase = "https://api.telegram.org"

// Service sends sales alerts to a Telegram chat
type Service struct {
	logger  *logrus.Logger
	client  *http.Client
	apiBase string
	printer *message.Printer

	mu     sync.RWMutex
	config *models.NotifierConfig
}

func NewService(logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		logger:  logger,
		apiBase: DefaultAPIBase,
		printer: message.NewPrinter(language.BrazilianPortuguese),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: &models.NotifierConfig{},
	}
}

// SetAPIBase points the service at another Bot API endpoint
func (s *Service) SetAPIBase(base string) {
	s.apiBase = strings.TrimRight(base, "/")
}

func (s *Service) UpdateConfig(config *models.NotifierConfig) {
	if config == nil {
		config = &models.NotifierConfig{}
	}
	s.mu.Lock()
	s.config = config
	s.mu.Unlock()
}

func (s *Service) currentConfig() *models.NotifierConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SendMessage sends a message to the configured Telegram chat
func (s *Service) SendMessage(ctx context.Context, text string) error {
	config := s.currentConfig()
	if !config.IsEnabled {
		return nil
	}
	return s.send(ctx, config.BotToken, config.ChatID, text)
}

// SendTestMessage checks credentials before they are saved
func (s *Service) SendTestMessage(ctx context.Context, botToken, chatID string) error {
	return s.send(ctx, botToken, chatID, "<b>ImovelHub</b>\n\nNotificações de vendas configuradas com sucesso.")
}

func (s *Service) send(ctx context.Context, botToken, chatID, text string) error {
	if botToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if chatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, botToken)
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// ShouldNotify reports whether a status change produces an alert
func (s *Service) ShouldNotify(unit *models.Unit, previous models.UnitStatus) bool {
	config := s.currentConfig()
	if !config.IsEnabled || unit.Status == previous {
		return false
	}
	if unit.Status != models.UnitReserved && unit.Status != models.UnitSold {
		return false
	}
	filters := config.Filters.Data()
	return filters.IsUnitAllowed(unit)
}

// NotifyUnitStatus sends an alert when a unit becomes reserved or sold
func (s *Service) NotifyUnitStatus(ctx context.Context, dev *models.Development, unit *models.Unit, previous models.UnitStatus) error {
	if !s.ShouldNotify(unit, previous) {
		return nil
	}

	stats := inventory.FromSalesStatus(dev.SalesStatus)
	progress := inventory.DevelopmentProgress(dev, stats)

	title := "<b>🔒 Unidade reservada!</b>"
	if unit.Status == models.UnitSold {
		title = "<b>🎉 Unidade vendida!</b>"
	}

	label := unit.UnitNumber
	if unit.Block != nil && *unit.Block != "" {
		label = fmt.Sprintf("%s (bloco %s)", unit.UnitNumber, *unit.Block)
	}

	price, _ := unit.Price.Float64()

	text := fmt.Sprintf(
		"%s\n\n"+
			"🏢 %s\n"+
			"🚪 Unidade %s\n"+
			"💰 %s\n\n"+
			"📊 %d%% vendido (%d vendidas, %d reservadas, %d disponíveis de %d)",
		title,
		html.EscapeString(dev.Name),
		html.EscapeString(label),
		s.printer.Sprintf("R$ %.2f", price),
		progress,
		stats.Sold,
		stats.Reserved,
		stats.Available,
		dev.TotalUnits,
	)

	return s.SendMessage(ctx, text)
}

// MaskToken hides all but the last four characters of a bot token
func MaskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
