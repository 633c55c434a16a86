package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/client"
	"github.com/nabeel-hussain/ToDoApp/internal/tui"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8080", "task API base URL")
	pageSize := flag.Int("page-size", 10, "initial page size (5, 10, 25 or 50)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	logFile := flag.String("log-file", "", "write client logs to this file instead of discarding them")
	flag.Parse()

	// the terminal belongs to the UI; logs go to a file or nowhere
	lc := logging.DefaultConfig()
	lc.Level = "debug"
	lc.Output = os.DevNull
	if *logFile != "" {
		lc.Output = *logFile
	}
	logger, err := logging.NewFromConfig(lc)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := logger.Start(ctx); err != nil {
		log.Fatalf("logger start: %v", err)
	}
	defer logger.Stop(context.Background())

	c := client.New(client.Config{BaseURL: *addr, Timeout: *timeout})
	if err := tui.Run(ctx, c, *pageSize); err != nil {
		log.Fatalf("tui: %v", err)
	}
}
