package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Crypto   CryptoConfig   `env:",prefix=CRYPTO_"`
	SMTP     SMTPConfig     `env:",prefix=SMTP_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host       string `env:"HOST,default=localhost"`
	Port       string `env:"PORT,default=5432"`
	User       string `env:"USER,default=vault_api"`
	Password   string `env:"PASSWORD,default=vault_api_password"`
	DBName     string `env:"DB,default=vault_api_db"`
	SSLMode    string `env:"SSLMODE,default=disable"`
	Migrations string `env:"MIGRATIONS,default=file://migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret      string   `env:"SECRET,required"`
	TokenExpiry Duration `env:"TOKEN_EXPIRY,default=24h"`
}

// CryptoConfig holds the process-wide key used to encrypt sensitive
// credential fields at rest.
type CryptoConfig struct {
	Key string `env:"KEY,required"`
}

type SMTPConfig struct {
	Host      string `env:"HOST,default="`
	Port      int    `env:"PORT,default=587"`
	User      string `env:"USER,default="`
	Password  string `env:"PASSWORD,default="`
	FromEmail string `env:"FROM_EMAIL,default="`
	// VerifyURL is the base address embedded in verification emails; the
	// token is appended as the final path segment.
	VerifyURL string `env:"VERIFY_URL,default=http://localhost:8080/v1/email/verify"`
}

type SecurityConfig struct {
	BCryptCost int `env:"BCRYPT_COST,default=12"`
	// TokenTTL bounds the lifetime of verification and reset tokens.
	TokenTTL Duration `env:"TOKEN_TTL,default=12h"`
	PageSize int      `env:"PAGE_SIZE,default=5"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// URL returns the PostgreSQL connection URL used by the migration tool
func (p PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// AES-256 for the field cipher
	if len(config.Crypto.Key) != 32 {
		return nil, fmt.Errorf("CRYPTO_KEY must be exactly 32 bytes long")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
