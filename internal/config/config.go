package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Game      GameConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string `validate:"required,numeric"`
}

// LogConfig controls the root zap logger.
type LogConfig struct {
	Level       string `validate:"oneof=debug info warn error"`
	Development bool
	Output      string `validate:"required"`
}

// GameConfig holds the starting conditions of a new game.
type GameConfig struct {
	StartBalance  float64 `validate:"gte=0"`
	ActionsPerDay int     `validate:"gt=0"`
	BuildingSlots int     `validate:"gte=2"`
	Locale        string  `validate:"required,bcp47_language_tag"`
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// The channel is disabled when no access token is configured.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string `validate:"required_with=AccessToken"`
	VerifyToken   string `validate:"required_with=AccessToken"`
	BaseURL       string `validate:"required,url"`
	APIVersion    string `validate:"required"`
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string `validate:"required_with=CredentialsPath"`
	SheetName       string `validate:"required"`
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string `validate:"required"`
	Timezone     string `validate:"required"`
	Recipient    string
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables the sink.
type MongoDBConfig struct {
	URI        string
	DBName     string `validate:"required"`
	Collection string `validate:"required"`
}

// Enabled reports whether the WhatsApp channel has credentials.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// Enabled reports whether the Sheets ledger is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != ""
}

// Enabled reports whether day reports should be stored in MongoDB.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// Settings converts the game section into core settings.
func (c GameConfig) Settings() farm.Settings {
	return farm.Settings{
		StartBalance:     c.StartBalance,
		ActionsPerDay:    c.ActionsPerDay,
		BuildingCapacity: c.BuildingSlots,
	}
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	var p parser
	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:       strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
			Development: p.bool("LOG_DEVELOPMENT", false),
			Output:      getenvWithDefault("LOG_OUTPUT", "stdout"),
		},
		Game: GameConfig{
			StartBalance:  p.float("GAME_START_BALANCE", 1000),
			ActionsPerDay: p.int("GAME_ACTIONS_PER_DAY", 5),
			BuildingSlots: p.int("GAME_BUILDING_SLOTS", 10),
			Locale:        getenvWithDefault("GAME_LOCALE", "en"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			SheetName:       getenvWithDefault("GOOGLE_SHEET_NAME", "Days"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			Recipient:    os.Getenv("REPORT_RECIPIENT"),
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGODB_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "farmsim"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", "day_reports"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.WhatsApp.Enabled() && c.Reporting.Recipient == "" {
		return errors.New("REPORT_RECIPIENT must be provided when WHATSAPP_TOKEN is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parser reads typed variables and keeps the first conversion error.
type parser struct {
	err error
}

func (p *parser) lookup(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != "" && p.err == nil
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%s=%q: %w", key, value, err)
}

func (p *parser) int(key string, fallback int) int {
	value, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	value, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(key, value, err)
		return fallback
	}
	return f
}

func (p *parser) bool(key string, fallback bool) bool {
	value, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, value, err)
		return fallback
	}
	return b
}
