package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr        = "server.addr"
	keyServerRateLimit   = "server.rate_limit"
	keyServerTrustProxy  = "server.trust_proxy"
	keyNotesRoot         = "notes.root"
	keyNotesRootFile     = "notes.root_file"
	keyNotesDir          = "notes.dir"
	keyNotesMaxFileBytes = "notes.max_file_bytes"
	keySearchLimit       = "search.default_limit"
	keySearchStrict      = "search.strict_store_errors"
	keyCronURL           = "calendar.cron_url"
	keyCronTimeoutMS     = "calendar.cron_timeout_ms"
	keyPresenceBackend   = "presence.backend"
	keyRedisAddr         = "presence.redis_addr"
	keyRedisPassword     = "presence.redis_password"
	keyRedisDB           = "presence.redis_db"
	keyPresenceStaleSecs = "presence.stale_after_seconds"
	keyAgentID           = "agent.id"
	keyLogFile           = "log.file"
	keyLogLevel          = "log.level"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

var settingKinds = map[string]valueKind{
	keyServerAddr:        kindString,
	keyServerRateLimit:   kindInt,
	keyServerTrustProxy:  kindBool,
	keyNotesRoot:         kindString,
	keyNotesRootFile:     kindString,
	keyNotesDir:          kindString,
	keyNotesMaxFileBytes: kindInt,
	keySearchLimit:       kindInt,
	keySearchStrict:      kindBool,
	keyCronURL:           kindString,
	keyCronTimeoutMS:     kindInt,
	keyPresenceBackend:   kindString,
	keyRedisAddr:         kindString,
	keyRedisPassword:     kindString,
	keyRedisDB:           kindInt,
	keyPresenceStaleSecs: kindInt,
	keyAgentID:           kindString,
	keyLogFile:           kindString,
	keyLogLevel:          kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:       s.getString(keyServerAddr, d.Server.Addr),
			RateLimit:  s.getInt(keyServerRateLimit, d.Server.RateLimit),
			TrustProxy: s.getBool(keyServerTrustProxy, d.Server.TrustProxy),
		},
		Notes: domain.NotesSettings{
			Root:         s.configStore.GetString(keyNotesRoot),
			RootFile:     s.getString(keyNotesRootFile, d.Notes.RootFile),
			Dir:          s.getString(keyNotesDir, d.Notes.Dir),
			MaxFileBytes: int64(s.getInt(keyNotesMaxFileBytes, int(d.Notes.MaxFileBytes))),
		},
		Search: domain.SearchSettings{
			DefaultLimit:      s.getInt(keySearchLimit, d.Search.DefaultLimit),
			StrictStoreErrors: s.getBool(keySearchStrict, d.Search.StrictStoreErrors),
		},
		Calendar: domain.CalendarSettings{
			CronURL: s.getString(keyCronURL, d.Calendar.CronURL),
			CronTimeout: time.Duration(
				s.getInt(keyCronTimeoutMS, int(d.Calendar.CronTimeout/time.Millisecond)),
			) * time.Millisecond,
		},
		Presence: domain.PresenceSettings{
			Backend:       s.getPresenceBackend(d.Presence.Backend),
			RedisAddr:     s.getString(keyRedisAddr, d.Presence.RedisAddr),
			RedisPassword: s.configStore.GetString(keyRedisPassword),
			RedisDB:       s.getInt(keyRedisDB, d.Presence.RedisDB),
			StaleAfter: time.Duration(
				s.getInt(keyPresenceStaleSecs, int(d.Presence.StaleAfter/time.Second)),
			) * time.Second,
			AgentID: s.getString(keyAgentID, d.Presence.AgentID),
		},
		Log: domain.LogSettings{
			File:  s.configStore.GetString(keyLogFile),
			Level: s.getString(keyLogLevel, d.Log.Level),
		},
	}

	if settings.Search.DefaultLimit < 1 {
		settings.Search.DefaultLimit = d.Search.DefaultLimit
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists every recognised settings key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetValue returns the effective value of one key, falling back to its default.
func (s *SettingsService) GetValue(key string) (any, error) {
	if _, ok := settingKinds[key]; !ok {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	effective := map[string]any{
		keyServerAddr:        settings.Server.Addr,
		keyServerRateLimit:   settings.Server.RateLimit,
		keyServerTrustProxy:  settings.Server.TrustProxy,
		keyNotesRoot:         settings.Notes.Root,
		keyNotesRootFile:     settings.Notes.RootFile,
		keyNotesDir:          settings.Notes.Dir,
		keyNotesMaxFileBytes: settings.Notes.MaxFileBytes,
		keySearchLimit:       settings.Search.DefaultLimit,
		keySearchStrict:      settings.Search.StrictStoreErrors,
		keyCronURL:           settings.Calendar.CronURL,
		keyCronTimeoutMS:     settings.Calendar.CronTimeout.Milliseconds(),
		keyPresenceBackend:   settings.Presence.Backend.String(),
		keyRedisAddr:         settings.Presence.RedisAddr,
		keyRedisPassword:     settings.Presence.RedisPassword,
		keyRedisDB:           settings.Presence.RedisDB,
		keyPresenceStaleSecs: int(settings.Presence.StaleAfter / time.Second),
		keyAgentID:           settings.Presence.AgentID,
		keyLogFile:           settings.Log.File,
		keyLogLevel:          settings.Log.Level,
	}
	return effective[key], nil
}

// SetValue parses raw according to the key's type, stores it and saves.
func (s *SettingsService) SetValue(key, raw string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var value any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		value = n
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		value = b
	default:
		value = raw
	}

	if key == keyPresenceBackend && !domain.PresenceBackend(raw).IsValid() {
		return fmt.Errorf("%w: invalid presence backend: %s", domain.ErrInvalidInput, raw)
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPresenceBackend(defaultVal domain.PresenceBackend) domain.PresenceBackend {
	backend := domain.PresenceBackend(s.configStore.GetString(keyPresenceBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
