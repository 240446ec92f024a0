package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Backend selector values for DATA_BACKEND.
const (
	BackendMySQL = "mysql"
	BackendREST  = "rest"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Connection settings for the REST adapter are
// only required when that backend is selected; the storage settings are
// only required when image uploads are enabled.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DataBackend string // which DataService adapter to construct (mysql | rest)

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	RESTBaseURL string // base URL of the generic REST backend
	RESTToken   string // bearer token for the REST backend

	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	StorageKey    string // object storage access key
	StorageSecret string // object storage secret key
	StorageRegion string // object storage region
	StorageBucket string // object storage bucket for uploaded images
	StorageRoot   string // key prefix inside the bucket

	AuditFallbackKey string        // redis key holding the local audit fallback list
	AuditReprobe     time.Duration // interval between availability re-probes (0 disables)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DataBackend:  getenv("DATA_BACKEND", BackendMySQL),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),

		StorageKey:    os.Getenv("STORAGE_KEY"),
		StorageSecret: os.Getenv("STORAGE_SECRET"),
		StorageRegion: getenv("STORAGE_REGION", "nyc3"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		StorageRoot:   getenv("STORAGE_ROOT", "ecowave"),

		AuditFallbackKey: getenv("AUDIT_FALLBACK_KEY", "audit:fallback"),
		AuditReprobe:     parseDur(getenv("AUDIT_REPROBE_INTERVAL", "0s")),
	}

	switch cfg.DataBackend {
	case BackendMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	case BackendREST:
		cfg.RESTBaseURL = must("REST_BASE_URL")
		cfg.RESTToken = os.Getenv("REST_TOKEN")
	default:
		log.Fatalf("unknown DATA_BACKEND: %q (want %s or %s)", cfg.DataBackend, BackendMySQL, BackendREST)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
