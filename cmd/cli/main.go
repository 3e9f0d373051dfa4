package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"shodhacli/internal/cli/config"
	"shodhacli/internal/cli/repl"
	"shodhacli/internal/client"
	"shodhacli/internal/contest/board"
	"shodhacli/internal/contest/session"
	"shodhacli/internal/contest/track"
	"shodhacli/pkg/utils/logger"
)

const defaultConfigPath = "configs/cli.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	baseURL := flag.String("base", "", "Override base URL")
	contestID := flag.String("contest", "", "Contest identifier")
	userName := flag.String("user", "", "User name")
	logLevel := flag.String("log-level", "", "Override log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	reader := bufio.NewReader(os.Stdin)
	contest := promptIfEmpty(reader, *contestID, "Contest ID")
	user := promptIfEmpty(reader, *userName, "Username")

	ticket, err := session.Join(contest, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "join failed: %v\n", err)
		return
	}

	api := client.New(cfg.BaseURL, cfg.Timeout)
	shell := repl.New()

	ctx := context.Background()
	sess := session.Open(ctx, api, ticket, session.Options{
		Track: track.Options{
			PollInterval: cfg.PollInterval,
			TrackTimeout: cfg.TrackTimeout,
		},
		Board: board.Options{Interval: cfg.BoardInterval},
	}, shell.Notify)
	defer sess.Close()

	if err := shell.Run(ctx, sess); err != nil {
		fmt.Fprintf(os.Stderr, "shell exited: %v\n", err)
	}
}

func promptIfEmpty(reader *bufio.Reader, value, prompt string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	fmt.Printf("%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
