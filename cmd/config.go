package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file. They are also
// passed to extensions.
const (
	EnvTransactionsFile = "HOLDINGS_TRANSACTIONS"
	EnvPricesFile       = "HOLDINGS_PRICES"
	EnvCalendarFile     = "HOLDINGS_CALENDAR"
	EnvBenchmark        = "HOLDINGS_BENCHMARK"
	EnvCurrency         = "HOLDINGS_CURRENCY"
	EnvCalendarPolicy   = "HOLDINGS_CALENDAR_POLICY"
)

// Config locates the input files and sets the analysis defaults.
type Config struct {
	Transactions   string `yaml:"transactions"`    // CSV, or JSONL when the extension is .jsonl
	Prices         string `yaml:"prices"`          // CSV, long or wide
	Calendar       string `yaml:"calendar"`        // one date per line, the benchmark's days when empty
	Benchmark      string `yaml:"benchmark"`       // symbol in the prices file
	Currency       string `yaml:"currency"`        // currency of prices and costs
	CalendarPolicy string `yaml:"calendar_policy"` // shift or reject
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Transactions:   "transactions.csv",
		Prices:         "prices.csv",
		Benchmark:      "SPY",
		Currency:       "USD",
		CalendarPolicy: "shift",
	}
}

// LoadConfig returns the defaults, overridden by the YAML file at path if it
// exists, then by the HOLDINGS_* environment variables. A .env file in the
// working directory is loaded first.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("could not read config file %q: %w", path, err)
		default:
			var file Config
			if err := yaml.Unmarshal(data, &file); err != nil {
				return cfg, fmt.Errorf("could not parse config file %q: %w", path, err)
			}
			cfg = cfg.With(file)
		}
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg = cfg.With(Config{
		Transactions:   os.Getenv(EnvTransactionsFile),
		Prices:         os.Getenv(EnvPricesFile),
		Calendar:       os.Getenv(EnvCalendarFile),
		Benchmark:      os.Getenv(EnvBenchmark),
		Currency:       os.Getenv(EnvCurrency),
		CalendarPolicy: os.Getenv(EnvCalendarPolicy),
	})
	return cfg, nil
}

// With returns c with every non empty field of o.
func (c Config) With(o Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Transactions, o.Transactions)
	set(&c.Prices, o.Prices)
	set(&c.Calendar, o.Calendar)
	set(&c.Benchmark, o.Benchmark)
	set(&c.Currency, o.Currency)
	set(&c.CalendarPolicy, o.CalendarPolicy)
	return c
}

// Environ returns the configuration as environment variables.
func (c Config) Environ() []string {
	return []string{
		EnvTransactionsFile + "=" + c.Transactions,
		EnvPricesFile + "=" + c.Prices,
		EnvCalendarFile + "=" + c.Calendar,
		EnvBenchmark + "=" + c.Benchmark,
		EnvCurrency + "=" + c.Currency,
		EnvCalendarPolicy + "=" + c.CalendarPolicy,
	}
}
