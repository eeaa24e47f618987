// Command memewatch runs the market watcher: it polls DexScreener for a
// watch-list of token symbols, scores each symbol's most liquid pair, serves
// the results over HTTP and sends Telegram alerts for priority signals.
//
// Usage:
//
//	memewatch --config config.yaml
//	memewatch --watch PEPE,WIF --chain solana
//	memewatch --setup  (interactive config wizard)
//
// Optional environment variables (a .env file is honored):
//
//	TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID — enable alert delivery
//	REDIS_PASSWORD — password for the optional Redis cache backend
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vadiminshakov/memewatch/config"
	"github.com/vadiminshakov/memewatch/internal"
	"github.com/vadiminshakov/memewatch/internal/cache"
	"github.com/vadiminshakov/memewatch/internal/clients"
	"github.com/vadiminshakov/memewatch/internal/services/market"
	"github.com/vadiminshakov/memewatch/internal/services/notifier"
	"github.com/vadiminshakov/memewatch/internal/services/selector"
	"github.com/vadiminshakov/memewatch/internal/setup"
	"github.com/vadiminshakov/memewatch/internal/web"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	setupFlag := flag.Bool("setup", false, "run the interactive config wizard")

	// ignore a missing .env, the environment may be set directly
	_ = godotenv.Load()

	conf, err := config.Get()
	if *setupFlag {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	resultCache, err := buildCache(ctx, conf)
	if err != nil {
		logger.Fatal("failed to initialize result cache", zap.Error(err))
	}

	fetcher := clients.NewDexScreenerClient()
	sel := selector.New(conf.Chain, conf.MinLiquidityUSD)
	aggregator := market.NewAggregator(fetcher, sel, resultCache,
		conf.WatchList, conf.Chain, conf.Workers, logger)

	tg := notifier.NewTelegramNotifier(conf.Telegram.Token, conf.Telegram.ChatID)
	if !tg.Enabled() {
		logger.Info("telegram credentials not set, alert delivery disabled")
	}

	watcher := internal.NewWatcher(aggregator, tg, conf, logger)
	server := web.NewServer(conf.ListenAddr, watcher, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("serving http", zap.String("addr", conf.ListenAddr))
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("watcher stopped", zap.Error(err))
	}
}

func buildCache(ctx context.Context, conf config.Config) (cache.ResultCache, error) {
	if conf.Redis.Addr == "" {
		return cache.NewMemoryCache(conf.CacheTTL), nil
	}

	return cache.NewRedisCache(ctx, conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB, conf.CacheTTL)
}
