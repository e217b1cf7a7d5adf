// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/config"
	"gopkg.in/yaml.v3"
)

// GeneratedConfigPath is where the wizard saves the resulting config.
const GeneratedConfigPath = "config.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the resulting
// yaml config to GeneratedConfigPath.
func RunTUI() error {
	var (
		platform        string
		pair            string
		amountStr       string
		pollIntervalStr string
		klineInterval   string
		shortWindowStr  string
		longWindowStr   string
		confirm         bool
	)

	// defaults
	pair = "BTC_USDT"
	amountStr = "100"
	pollIntervalStr = "1m"
	klineInterval = config.DefaultKlineInterval
	shortWindowStr = strconv.Itoa(config.DefaultShortWindow)
	longWindowStr = strconv.Itoa(config.DefaultLongWindow)

	// step 1: platform
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Moving-average crossover trading, configured in style.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PLATFORM"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Exchange Platform").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 2: pair and amount
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Must contain underscore (e.g. BTC_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					_, err := config.PairFromString(s)
					return err
				}),
			huh.NewInput().
				Title("Amount per Buy").
				Description("Quote currency notional spent on each golden cross (e.g. 100)").
				Value(&amountStr).
				Validate(validateAmount),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: timing
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: TIMING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Poll Interval").
				Description("Duration string (e.g. 30s, 1m, 5m)").
				Value(&pollIntervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Candle Timeframe").
				Options(
					huh.NewOption("15 minutes", "15m"),
					huh.NewOption("1 hour", "1h"),
					huh.NewOption("4 hours", "4h"),
					huh.NewOption("1 day", "1d"),
				).
				Value(&klineInterval),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 4: moving averages
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: MOVING AVERAGES"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Short Window").
				Description("Candles in the short moving average (e.g. 20)").
				Value(&shortWindowStr).
				Validate(validateWindow),
			huh.NewInput().
				Title("Long Window").
				Description("Candles in the long moving average (e.g. 50)").
				Value(&longWindowStr).
				Validate(validateWindow),
		),
	).Run()
	if err != nil {
		return err
	}

	shortWindow, _ := strconv.Atoi(shortWindowStr)
	longWindow, _ := strconv.Atoi(longWindowStr)
	if shortWindow >= longWindow {
		return fmt.Errorf("short window (%d) must be less than long window (%d)", shortWindow, longWindow)
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Platform: %s\nPair: %s\nAmount: %s\nPoll: %s\nTimeframe: %s\nWindows: %d/%d\n",
		platform, pair, amountStr, pollIntervalStr, klineInterval, shortWindow, longWindow,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	pollInterval, _ := time.ParseDuration(pollIntervalStr)

	configs := []config.FileConfig{
		{
			Platform:      platform,
			Pair:          pair,
			Amount:        amountStr,
			PollInterval:  pollInterval,
			KlineInterval: klineInterval,
			ShortWindow:   shortWindow,
			LongWindow:    longWindow,
		},
	}

	data, err := yaml.Marshal(configs)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(GeneratedConfigPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\n✓ Configuration saved to %s\nStart the bot with: crossbot --config %s", GeneratedConfigPath, GeneratedConfigPath)))
	return nil
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateWindow(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
