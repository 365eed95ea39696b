// Package main starts the interactive GopherKeeper client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mkalinin/gopherkeeper/internal/client/api"
	"github.com/mkalinin/gopherkeeper/internal/client/session"
	"github.com/mkalinin/gopherkeeper/internal/client/tui"
	"github.com/mkalinin/gopherkeeper/internal/logger"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		baseURL   string
		tokenPath string
		showVer   bool
	)

	flag.StringVar(&baseURL, "a", "http://localhost:8080", "server base URL")
	flag.StringVar(&tokenPath, "t", "", "path to the token file (default: ~/.goph_token)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("GopherKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if addr := os.Getenv("GOPHERKEEPER_ADDRESS"); addr != "" {
		baseURL = addr
	}

	// The TUI owns the terminal, so logs go to a file.
	zapLogger, err := logger.New("info", filepath.Join(os.TempDir(), "gopherkeeper-client.log"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	tokens, err := api.DefaultTokenStore()
	if err != nil {
		log.Fatal(err)
	}
	if tokenPath != "" {
		tokens = &api.TokenStore{Path: tokenPath}
	}

	manager := session.NewManager(api.New(baseURL), tokens, sugar)
	app := tui.New(manager, sugar)

	runner, err := tui.NewRunner(app)
	if err != nil {
		log.Fatal(err)
	}
	if err := runner.Run(context.Background()); err != nil {
		sugar.Errorw("interaction loop failed", "error", err)
		log.Fatal(err)
	}
}
