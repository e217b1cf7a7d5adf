// Package config loads bot configuration from a yaml file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultShortWindow candles in the short moving average.
	DefaultShortWindow = 20
	// DefaultLongWindow candles in the long moving average.
	DefaultLongWindow = 50
	// DefaultPollInterval pause between polling cycles.
	DefaultPollInterval = 60 * time.Second
	// DefaultKlineInterval candle timeframe used for the averages.
	DefaultKlineInterval = "1h"
)

// Config holds the runtime parameters for a single trading pair.
type Config struct {
	Platform      string
	Pair          domain.Pair
	Amount        decimal.Decimal
	PollInterval  time.Duration
	KlineInterval string
	ShortWindow   int
	LongWindow    int
	Lookback      int
}

// FileConfig is the yaml representation of Config. It is exported so the
// setup wizard can generate config files with the same shape.
type FileConfig struct {
	Platform      string        `yaml:"platform"`
	Pair          string        `yaml:"pair"`
	Amount        string        `yaml:"amount"`
	PollInterval  time.Duration `yaml:"poll_interval,omitempty"`
	KlineInterval string        `yaml:"kline_interval,omitempty"`
	ShortWindow   int           `yaml:"short_window,omitempty"`
	LongWindow    int           `yaml:"long_window,omitempty"`
	Lookback      int           `yaml:"lookback,omitempty"`
}

// Get parses CLI flags and, when --config is provided, the yaml config file.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	platform := flag.String("platform", "binance", "exchange platform: binance or bybit")
	pairFlag := flag.String("pair", "BTC_USDT", "trade pair, example: BTC_USDT")
	amount := flag.String("amount", "100", "quote currency amount to spend per buy, example: 100")
	pollInterval := flag.Duration("pollinterval", DefaultPollInterval, "pause between polling cycles")
	klineInterval := flag.String("klineinterval", DefaultKlineInterval, "candle timeframe, example: 1h")
	shortWindow := flag.Int("shortwindow", DefaultShortWindow, "short moving average window")
	longWindow := flag.Int("longwindow", DefaultLongWindow, "long moving average window")
	lookback := flag.Int("lookback", 0, "candles fetched per cycle, 0 means twice the long window")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	c := FileConfig{
		Platform:      *platform,
		Pair:          *pairFlag,
		Amount:        *amount,
		PollInterval:  *pollInterval,
		KlineInterval: *klineInterval,
		ShortWindow:   *shortWindow,
		LongWindow:    *longWindow,
		Lookback:      *lookback,
	}

	conf, err := fromFileConfig(c)
	if err != nil {
		return nil, err
	}

	return []Config{conf}, nil
}

func getYaml(path string) ([]Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fileConfigs []FileConfig
	if err := yaml.Unmarshal(f, &fileConfigs); err != nil {
		return nil, err
	}

	if len(fileConfigs) == 0 {
		return nil, fmt.Errorf("config file %s contains no bot configurations", path)
	}

	configs := make([]Config, 0, len(fileConfigs))
	for _, c := range fileConfigs {
		conf, err := fromFileConfig(c)
		if err != nil {
			return nil, fmt.Errorf("invalid config for pair %q: %w", c.Pair, err)
		}
		configs = append(configs, conf)
	}

	return configs, nil
}

func fromFileConfig(c FileConfig) (Config, error) {
	pair, err := PairFromString(c.Pair)
	if err != nil {
		return Config{}, err
	}

	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'amount' param (correct format is 100): %w", err)
	}

	conf := Config{
		Platform:      c.Platform,
		Pair:          pair,
		Amount:        amount,
		PollInterval:  c.PollInterval,
		KlineInterval: c.KlineInterval,
		ShortWindow:   c.ShortWindow,
		LongWindow:    c.LongWindow,
		Lookback:      c.Lookback,
	}

	applyDefaults(&conf)

	if err := validate(conf); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func applyDefaults(c *Config) {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.KlineInterval == "" {
		c.KlineInterval = DefaultKlineInterval
	}
	if c.ShortWindow == 0 {
		c.ShortWindow = DefaultShortWindow
	}
	if c.LongWindow == 0 {
		c.LongWindow = DefaultLongWindow
	}
	if c.Lookback == 0 {
		c.Lookback = 2 * c.LongWindow
	}
}

func validate(c Config) error {
	switch c.Platform {
	case "binance", "bybit":
	default:
		return fmt.Errorf("unsupported platform %q, expected binance or bybit", c.Platform)
	}

	if c.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("'amount' must be positive, got %s", c.Amount.String())
	}
	if c.ShortWindow < 1 {
		return fmt.Errorf("'short_window' must be at least 1, got %d", c.ShortWindow)
	}
	if c.ShortWindow >= c.LongWindow {
		return fmt.Errorf("'short_window' (%d) must be less than 'long_window' (%d)", c.ShortWindow, c.LongWindow)
	}
	if c.Lookback < c.LongWindow+1 {
		return fmt.Errorf("'lookback' (%d) must be at least long_window+1 (%d)", c.Lookback, c.LongWindow+1)
	}

	return nil
}

// PairFromString parses a BASE_QUOTE pair string like "BTC_USDT".
func PairFromString(pairStr string) (domain.Pair, error) {
	pairElements := strings.Split(pairStr, "_")
	if len(pairElements) != 2 || pairElements[0] == "" || pairElements[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair %q, expected format BASE_QUOTE (e.g. BTC_USDT)", pairStr)
	}
	return domain.Pair{From: pairElements[0], To: pairElements[1]}, nil
}
