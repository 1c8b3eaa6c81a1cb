package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"gfi/internal/config"
	"gfi/internal/database"
	"gfi/internal/pkg/logging"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [up|down|status]")
	}
	flag.Parse()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	config.LoadDotEnv()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logger, err = logging.New("info")
		if err != nil {
			log.Fatal(err)
		}
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(databaseURL, logger)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	ctx := context.Background()
	switch cmd {
	case "up":
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("migrate up failed", zap.Error(err))
		}
		logger.Info("schema is up to date")
	case "down":
		res, err := database.Down(ctx, db)
		if err != nil {
			logger.Fatal("migrate down failed", zap.Error(err))
		}
		logger.Info("rolled back", zap.String("source", res.Source.Path))
	case "status":
		statuses, err := database.Status(ctx, db)
		if err != nil {
			logger.Fatal("migrate status failed", zap.Error(err))
		}
		for _, st := range statuses {
			fmt.Printf("%-45s %s\n", st.Source.Path, st.State)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
