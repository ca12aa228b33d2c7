package domain

import "time"

const unknownDescription = "Unknown"

// PresenceBackend selects where the agent presence entry is stored.
type PresenceBackend string

// Available presence backends.
const (
	// PresenceBackendMemory keeps presence in process with a TTL cache.
	PresenceBackendMemory PresenceBackend = "memory"

	// PresenceBackendRedis keeps presence in Redis so several processes share it.
	PresenceBackendRedis PresenceBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b PresenceBackend) IsValid() bool {
	switch b {
	case PresenceBackendMemory, PresenceBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b PresenceBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b PresenceBackend) Description() string {
	switch b {
	case PresenceBackendMemory:
		return "In-process cache"
	case PresenceBackendRedis:
		return "Redis"
	default:
		return unknownDescription
	}
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string

	// RateLimit is the number of requests allowed per client per minute.
	// Zero disables rate limiting.
	RateLimit int

	// TrustProxy keys rate limiting on X-Forwarded-For / X-Real-IP.
	// Leave off unless the API sits behind a reverse proxy.
	TrustProxy bool
}

// NotesSettings locates the memory notes on disk.
type NotesSettings struct {
	// Root is the directory holding RootFile and Dir.
	Root     string
	RootFile string
	Dir      string

	// MaxFileBytes skips files larger than this.
	MaxFileBytes int64
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	DefaultLimit int

	// StrictStoreErrors fails the whole search when any store-backed domain
	// fails. When false, a failing store domain contributes nothing unless
	// it is the only selected domain.
	StrictStoreErrors bool
}

// CalendarSettings configures the cron job source.
type CalendarSettings struct {
	CronURL     string
	CronTimeout time.Duration
}

// PresenceSettings configures the agent presence store.
type PresenceSettings struct {
	Backend       PresenceBackend
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StaleAfter    time.Duration
	AgentID       string
}

// LogSettings configures logging output.
type LogSettings struct {
	// File is a log file path. Empty logs to stderr only.
	File  string
	Level string
}

// AppSettings aggregates all user-configurable settings.
type AppSettings struct {
	Server   ServerSettings
	Notes    NotesSettings
	Search   SearchSettings
	Calendar CalendarSettings
	Presence PresenceSettings
	Log      LogSettings
}

// Setting defaults.
const (
	DefaultServerAddr      = ":3000"
	DefaultRateLimit       = 120
	DefaultNotesRootFile   = "MEMORY.md"
	DefaultNotesDir        = "memory"
	DefaultMaxNoteBytes    = 300_000
	DefaultSearchLimit     = 20
	DefaultCronURL         = "http://localhost:3001/api/cron"
	DefaultCronTimeout     = 1500 * time.Millisecond
	DefaultRedisAddr       = "localhost:6379"
	DefaultLogLevel        = "info"
	DefaultSnippetMaxChars = 160
)

// DefaultAppSettings returns settings with every default applied.
// Notes.Root is left empty and resolved to the working directory by callers.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{Addr: DefaultServerAddr, RateLimit: DefaultRateLimit},
		Notes: NotesSettings{
			RootFile:     DefaultNotesRootFile,
			Dir:          DefaultNotesDir,
			MaxFileBytes: DefaultMaxNoteBytes,
		},
		Search:   SearchSettings{DefaultLimit: DefaultSearchLimit, StrictStoreErrors: true},
		Calendar: CalendarSettings{CronURL: DefaultCronURL, CronTimeout: DefaultCronTimeout},
		Presence: PresenceSettings{
			Backend:    PresenceBackendMemory,
			RedisAddr:  DefaultRedisAddr,
			StaleAfter: DefaultPresenceStaleAfter,
			AgentID:    DefaultAgentID,
		},
		Log: LogSettings{Level: DefaultLogLevel},
	}
}
