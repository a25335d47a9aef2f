package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Data sources accepted by DATA_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":8501"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:8501,http://127.0.0.1:8501" envSeparator:","`

	DataDir    string `env:"DATA_DIR" envDefault:"./data"`
	DataSource string `env:"DATA_SOURCE" envDefault:"csv"`

	PovertyCountFile string `env:"POVERTY_COUNT_FILE" envDefault:"Jumlah Penduduk Miskin Provinsi Aceh Menurut KabupatenKota/merged_jumlah_penduduk_miskin_aceh.csv"`
	PovertyShareFile string `env:"POVERTY_SHARE_FILE" envDefault:"Jumlah Penduduk Miskin Provinsi Aceh Menurut KabupatenKota/persentase-penduduk-miskin-menurut-daerah-di-provinsi-aceh.csv"`
	PovertyIndexFile string `env:"POVERTY_INDEX_FILE" envDefault:"Indeks Kedalaman dan Keparahan Kemiskinan Aceh/test keparahan dan kedalaman.csv"`
	PovertyLineFile  string `env:"POVERTY_LINE_FILE" envDefault:"Garis Kemiskinan (GK) Aceh/garis_kemiskinan_rupiah.csv"`

	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"dashboard"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"dashboard"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"aceh_poverty"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxConcurrency int    `env:"MAX_CONCURRENCY" envDefault:"4"`
	MaxRetries     int    `env:"MAX_RETRIES" envDefault:"3"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Locale         string `env:"LOCALE" envDefault:"id"`

	ExportDir string `env:"EXPORT_DIR" envDefault:"./output"`
	ChromeBin string `env:"CHROME_BIN"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("config: DATA_SOURCE must be %q or %q, got %q", SourceCSV, SourcePostgres, c.DataSource)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("config: MAX_CONCURRENCY must be positive, got %d", c.MaxConcurrency)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
