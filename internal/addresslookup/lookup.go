package addresslookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const cacheFileName = "cep_cache.json"

// Address is the result of a postal code lookup
type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Lookup struct {
	logger    *logrus.Logger
	baseURL   string
	cacheDir  string
	cache     map[string]Address
	cacheLock sync.RWMutex
	saveLock  sync.Mutex
	client    *http.Client
}

// NewLookup creates a CEP lookup against a ViaCEP-compatible endpoint. When
// cacheDir is empty results are only cached in memory.
func NewLookup(logger *logrus.Logger, baseURL, cacheDir string, timeout time.Duration) *Lookup {
	if logger == nil {
		logger = logrus.New()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	l := &Lookup{
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheDir: cacheDir,
		cache:    make(map[string]Address),
		client:   &http.Client{Timeout: timeout},
	}

	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			logger.WithError(err).Warn("Could not create CEP cache directory")
		}
		l.loadCache()
	}

	return l
}

// NormalizeCEP strips formatting and returns the 8 digits of a CEP, or ""
// when the input is not a CEP
func NormalizeCEP(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
		default:
			return ""
		}
	}
	if b.Len() != 8 {
		return ""
	}
	return b.String()
}

func (l *Lookup) loadCache() {
	cacheFile := filepath.Join(l.cacheDir, cacheFileName)
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warnf("Could not load CEP cache: %v", err)
		}
		return
	}

	if err := json.Unmarshal(data, &l.cache); err != nil {
		l.logger.Errorf("Failed to parse CEP cache: %v", err)
		return
	}

	l.logger.Infof("Loaded %d cached postal codes", len(l.cache))
}

// saveCache writes the cache to a temp file and renames it over the cache
// file. Writers are serialized so the newest snapshot lands last.
func (l *Lookup) saveCache() {
	if l.cacheDir == "" {
		return
	}

	l.saveLock.Lock()
	defer l.saveLock.Unlock()

	l.cacheLock.RLock()
	data, err := json.Marshal(l.cache)
	l.cacheLock.RUnlock()
	if err != nil {
		l.logger.Errorf("Failed to marshal CEP cache: %v", err)
		return
	}

	tmp, err := os.CreateTemp(l.cacheDir, cacheFileName+".*.tmp")
	if err != nil {
		l.logger.Errorf("Failed to save CEP cache: %v", err)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		l.logger.Errorf("Failed to save CEP cache: %v", err)
		return
	}
	if err := tmp.Close(); err != nil {
		l.logger.Errorf("Failed to save CEP cache: %v", err)
		return
	}

	cacheFile := filepath.Join(l.cacheDir, cacheFileName)
	if err := os.Rename(tmp.Name(), cacheFile); err != nil {
		l.logger.Errorf("Failed to save CEP cache: %v", err)
	}
}

// viaCEPResponse mirrors the upstream payload. "erro" is a boolean on the
// current API and the string "true" on older deployments.
type viaCEPResponse struct {
	CEP         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	Erro        json.RawMessage `json:"erro"`
}

func (r *viaCEPResponse) failed() bool {
	switch strings.Trim(string(r.Erro), `"`) {
	case "true":
		return true
	}
	return false
}

// Lookup resolves a CEP to an address. Any failure returns nil; callers
// fall back to manual entry.
func (l *Lookup) Lookup(ctx context.Context, raw string) *Address {
	cep := NormalizeCEP(raw)
	if cep == "" {
		l.logger.WithField("cep", raw).Debug("Ignoring malformed CEP")
		return nil
	}

	l.cacheLock.RLock()
	if addr, ok := l.cache[cep]; ok {
		l.cacheLock.RUnlock()
		l.logger.WithFields(logrus.Fields{
			"cep":    cep,
			"source": "cache",
		}).Debug("Found address in cache")
		return &addr
	}
	l.cacheLock.RUnlock()

	addr, err := l.fetch(ctx, cep)
	if err != nil {
		l.logger.WithError(err).WithField("cep", cep).Warn("CEP lookup failed")
		return nil
	}

	l.logger.WithFields(logrus.Fields{
		"cep":    cep,
		"city":   addr.City,
		"source": "viacep",
	}).Info("Resolved postal code")

	l.cacheLock.Lock()
	l.cache[cep] = *addr
	l.cacheLock.Unlock()

	l.saveCache()

	return addr
}

func (l *Lookup) fetch(ctx context.Context, cep string) (*Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", l.baseURL, cep), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result viaCEPResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.failed() {
		return nil, fmt.Errorf("unknown postal code")
	}

	return &Address{
		ZipCode:      cep[:5] + "-" + cep[5:],
		Street:       result.Logradouro,
		Complement:   result.Complemento,
		Neighborhood: result.Bairro,
		City:         result.Localidade,
		State:        result.UF,
	}, nil
}
