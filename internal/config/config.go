package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Data
	CatalogPath    string `env:"CATALOG_PATH" envDefault:"sample_flooring_products.csv"`
	TranscriptPath string `env:"TRANSCRIPT_PATH" envDefault:"chatbot_conversation.txt"`

	// Pricing
	CurrencySymbol string          `env:"CURRENCY_SYMBOL" envDefault:"$"`
	MinOrderCharge decimal.Decimal `env:"MIN_ORDER_CHARGE" envDefault:"250"`
	MinOrderArea   decimal.Decimal `env:"MIN_ORDER_AREA" envDefault:"1000"`

	// Diagnostics
	LogFilePath   string `env:"LOG_FILE_PATH" envDefault:"logs/chatter.log"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`

	// Terminal
	HistoryFile string `env:"HISTORY_FILE" envDefault:".chatter_history"`
	// Any non-empty value disables color, per no-color.org.
	NoColor     string `env:"NO_COLOR"`
}

// New parses the process environment.
func New() (*Config, error) {
	return Parse(env.Options{})
}

// Parse is New with explicit options; tests pass Environment to avoid touching os env.
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.MinOrderCharge.IsNegative() {
		return nil, errors.Errorf("MIN_ORDER_CHARGE must not be negative, got %s", cfg.MinOrderCharge)
	}
	if cfg.MinOrderArea.IsNegative() {
		return nil, errors.Errorf("MIN_ORDER_AREA must not be negative, got %s", cfg.MinOrderArea)
	}
	return cfg, nil
}
