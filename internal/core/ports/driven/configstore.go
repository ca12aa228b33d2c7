package driven

// ConfigStore provides key-value access to the settings file.
// Keys are dotted paths such as "search.default_limit".
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false when the key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a value in memory. Call Save to persist it.
	Set(key string, value any) error

	// Save writes the current configuration to disk.
	Save() error

	// Load reads configuration from disk, replacing in-memory values.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
