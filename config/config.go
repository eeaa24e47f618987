// Package config loads watcher configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vadiminshakov/memewatch/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultWatchList tokens monitored when no watch-list is configured.
var DefaultWatchList = []string{
	"PIPPIN", "GOAT", "PENGU", "SPX6900", "FARTCOIN",
	"POPCAT", "PNUT", "BRETT", "MOODENG",
}

const (
	defaultCacheTTL        = 60 * time.Second
	defaultRefreshInterval = 60 * time.Second
	defaultListenAddr      = ":8080"
	defaultWorkers         = 4
)

// Redis optional shared ResultCache backend. Empty Addr selects the
// in-memory cache.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Telegram alert delivery credentials. Both fields empty disables delivery.
type Telegram struct {
	Token  string
	ChatID string
}

// Config watcher configuration.
type Config struct {
	WatchList       []string
	Chain           domain.Chain
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	// MinLiquidityUSD admission threshold for selected pairs; <= 0 disables it.
	MinLiquidityUSD float64
	Workers         int
	ListenAddr      string
	Redis           Redis
	Telegram        Telegram
}

type configTmp struct {
	WatchList       []string `yaml:"watch_list"`
	Chain           string   `yaml:"chain"`
	CacheTTLStr     string   `yaml:"cache_ttl,omitempty"`
	RefreshStr      string   `yaml:"refresh_interval,omitempty"`
	MinLiquidityUSD float64  `yaml:"min_liquidity_usd,omitempty"`
	Workers         int      `yaml:"workers,omitempty"`
	ListenAddr      string   `yaml:"listen_addr,omitempty"`
	Redis           Redis    `yaml:"redis,omitempty"`
}

// Get loads configuration from --config when provided, falling back to CLI
// flags. Telegram credentials always come from the environment
// (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID), never from the config file.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	watch := flag.String("watch", strings.Join(DefaultWatchList, ","), "comma-separated watch-list of token symbols")
	chain := flag.String("chain", domain.ChainAll.String(), "chain filter: all, solana, ethereum, bsc, base, arbitrum")
	cacheTTL := flag.Duration("cachettl", defaultCacheTTL, "result cache TTL")
	refresh := flag.Duration("refreshinterval", defaultRefreshInterval, "market refresh interval")
	minLiq := flag.Float64("minliquidity", 0, "minimum liquidity in USD for pair admission, 0 disables")
	workers := flag.Int("workers", defaultWorkers, "parallel symbol fetches per pass")
	listen := flag.String("listen", defaultListenAddr, "http listen address")
	flag.Parse()

	var (
		conf Config
		err  error
	)
	if *configPath != "" {
		conf, err = getYaml(*configPath)
	} else {
		conf, err = fromFlags(*watch, *chain, *cacheTTL, *refresh, *minLiq, *workers, *listen)
	}
	if err != nil {
		return Config{}, err
	}

	conf.Telegram = Telegram{
		Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}
	if conf.Redis.Password == "" {
		conf.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}

	return conf, conf.validate()
}

func fromFlags(watch, chain string, cacheTTL, refresh time.Duration,
	minLiq float64, workers int, listen string) (Config, error) {

	parsedChain, err := domain.ParseChain(chain)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --chain provided, --chain=%s", chain)
	}

	var symbols []string
	for _, s := range strings.Split(watch, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	return Config{
		WatchList:       symbols,
		Chain:           parsedChain,
		CacheTTL:        cacheTTL,
		RefreshInterval: refresh,
		MinLiquidityUSD: minLiq,
		Workers:         workers,
		ListenAddr:      listen,
	}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	conf := Config{
		WatchList:       tmp.WatchList,
		MinLiquidityUSD: tmp.MinLiquidityUSD,
		Workers:         tmp.Workers,
		ListenAddr:      tmp.ListenAddr,
		Redis:           tmp.Redis,
	}

	if len(conf.WatchList) == 0 {
		conf.WatchList = DefaultWatchList
	}
	if tmp.Chain == "" {
		conf.Chain = domain.ChainAll
	} else {
		conf.Chain, err = domain.ParseChain(tmp.Chain)
		if err != nil {
			return Config{}, err
		}
	}
	conf.CacheTTL, err = parseDurationOrDefault(tmp.CacheTTLStr, defaultCacheTTL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid cache_ttl: %w", err)
	}
	conf.RefreshInterval, err = parseDurationOrDefault(tmp.RefreshStr, defaultRefreshInterval)
	if err != nil {
		return Config{}, fmt.Errorf("invalid refresh_interval: %w", err)
	}
	if conf.Workers == 0 {
		conf.Workers = defaultWorkers
	}
	if conf.ListenAddr == "" {
		conf.ListenAddr = defaultListenAddr
	}

	return conf, nil
}

func parseDurationOrDefault(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}

	return time.ParseDuration(s)
}

func (c Config) validate() error {
	if len(c.WatchList) == 0 {
		return fmt.Errorf("watch-list must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}

	return nil
}
