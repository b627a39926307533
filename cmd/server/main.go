package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prayani09/ShriyashWork/config"
	"github.com/prayani09/ShriyashWork/internal/adminapi"
	"github.com/prayani09/ShriyashWork/internal/app"
	"github.com/prayani09/ShriyashWork/internal/catalogapi"
	"github.com/prayani09/ShriyashWork/internal/linkcheck"
	"github.com/prayani09/ShriyashWork/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	confFile = flag.String("c", "shriyashkart.yml", "config file")
)

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("server version: %s, usage: server [-h] [-c config file]\n", "latest")
		fmt.Fprintf(os.Stderr, "%s", ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	webserver.Init(application)
	adminapi.InitRouter()
	catalogapi.InitRouter()

	if cfg.LinkCheck.Enabled {
		checker := linkcheck.NewChecker(application.Store(),
			time.Duration(cfg.LinkCheck.Timeout)*time.Second)
		if err := application.AddJob(cfg.LinkCheck.Cron, checker.Run); err != nil {
			zap.S().Errorf("link check schedule invalid: %v", err)
		}
	}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return webserver.Listen()
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ctx.Done():
			return nil
		case sig := <-quit:
			zap.S().Infof("received signal %s, shutting down", sig)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return webserver.Shutdown(shutdownCtx)
		}
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
		os.Exit(1)
	}
	zap.S().Info("server stopped gracefully")
}
