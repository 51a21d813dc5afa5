// Package main starts the SIA MCP server: an MCP stdio server exposing the
// Universidad Nacional de Colombia's academic portal (SIA) as a set of tools
// for course search, catalog browsing, and authenticated student queries.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unal-mcp/sia-mcp/pkg/browser"
	"github.com/unal-mcp/sia-mcp/pkg/buscador"
	"github.com/unal-mcp/sia-mcp/pkg/cache"
	"github.com/unal-mcp/sia-mcp/pkg/catalog"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/ratelimit"
	"github.com/unal-mcp/sia-mcp/pkg/scrape"
	"github.com/unal-mcp/sia-mcp/pkg/session"
	"github.com/unal-mcp/sia-mcp/pkg/siamcp"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sia-mcp v%s\n", siamcp.Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sia-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, _ := logging.NewLogger("main")
	defer log.Close()
	log.Infof("starting, campus=%s headless=%t", cfg.Sede, cfg.Headless)

	// One limiter and one browser for the whole process: the portal sees a
	// single slow client no matter how many tools run.
	limiter := ratelimit.New(cfg.RateLimitDelay)
	store := cache.New(cfg.CacheTTL)
	browsers := browser.NewManager(cfg.Headless)
	defer browsers.Close()

	rpc := buscador.NewClient(limiter)
	defer rpc.Close()
	nav := catalog.NewNavigator(browsers, cfg, limiter)
	defer nav.Close()
	sessions := session.NewManager(browsers, cfg, limiter)
	defer sessions.Close()

	svc := scrape.NewService(rpc, nav, sessions, store, cfg)
	defer svc.Close()

	server := siamcp.New(svc, sessions)
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infof("shutting down")
		return nil
	}
	return err
}
