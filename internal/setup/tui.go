// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/memewatch/config"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"gopkg.in/yaml.v3"
)

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

type wizardConfig struct {
	WatchList       []string     `yaml:"watch_list"`
	Chain           string       `yaml:"chain"`
	CacheTTL        string       `yaml:"cache_ttl"`
	RefreshInterval string       `yaml:"refresh_interval"`
	MinLiquidityUSD float64      `yaml:"min_liquidity_usd,omitempty"`
	ListenAddr      string       `yaml:"listen_addr"`
	Redis           config.Redis `yaml:"redis,omitempty"`
}

// RunTUI launches the terminal configuration wizard and writes config.yaml.
func RunTUI() error {
	var (
		watchStr   string
		chain      string
		ttlStr     string
		refreshStr string
		minLiqStr  string
		listenAddr string
		redisAddr  string
		confirm    bool
	)

	// defaults
	watchStr = strings.Join(config.DefaultWatchList, ", ")
	ttlStr = "60s"
	refreshStr = "60s"
	minLiqStr = "0"
	listenAddr = ":8080"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("MEME-WATCH CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Point the watcher at your tokens.\n"))

	chainOptions := make([]huh.Option[string], 0, len(domain.Chains))
	for _, c := range domain.Chains {
		chainOptions = append(chainOptions, huh.NewOption(c.String(), c.String()))
	}

	fmt.Println(stepStyle.Render("STEP 1: MARKET"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Watch-list (comma-separated tickers)").
				Value(&watchStr),
			huh.NewSelect[string]().
				Title("Chain filter").
				Options(chainOptions...).
				Value(&chain),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 2: REFRESH & ADMISSION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cache TTL (e.g. 60s)").
				Value(&ttlStr).
				Validate(validateDuration),
			huh.NewInput().
				Title("Refresh interval (e.g. 60s)").
				Value(&refreshStr).
				Validate(validateDuration),
			huh.NewInput().
				Title("Minimum liquidity USD (0 disables)").
				Value(&minLiqStr).
				Validate(validateFloat),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 3: SERVING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP listen address").
				Value(&listenAddr),
			huh.NewInput().
				Title("Redis address (empty for in-memory cache)").
				Value(&redisAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	minLiq, _ := strconv.ParseFloat(minLiqStr, 64)

	var symbols []string
	for _, s := range strings.Split(watchStr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	out := wizardConfig{
		WatchList:       symbols,
		Chain:           chain,
		CacheTTL:        ttlStr,
		RefreshInterval: refreshStr,
		MinLiquidityUSD: minLiq,
		ListenAddr:      listenAddr,
		Redis:           config.Redis{Addr: redisAddr},
	}

	fmt.Println(stepStyle.Render("STEP 4: CONFIRM"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write config.yaml?").
				Description("Telegram credentials stay in the environment (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID).").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Aborted, nothing written."))
		return nil
	}

	payload, err := yaml.Marshal(out)
	if err != nil {
		return err
	}

	if err := os.WriteFile("config.yaml", payload, 0o644); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render("config.yaml written. Run: memewatch --config config.yaml"))

	return nil
}

func validateDuration(s string) error {
	_, err := time.ParseDuration(s)
	return err
}

func validateFloat(s string) error {
	_, err := strconv.ParseFloat(s, 64)
	return err
}
