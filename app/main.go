package main

import (
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/quillhq/quill/internal/adminauth"
	"github.com/quillhq/quill/internal/common"
	"github.com/quillhq/quill/internal/entryservice"
)

type application struct {
	config       *Config
	logger       *slog.Logger
	entryService *entryservice.EntryService
	gate         *adminauth.Gate
	cache        *common.Cache
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	gate, err := adminauth.NewGate(cfg.AdminPassword, cache)
	if err != nil {
		logger.Error("failed to set up the admin gate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:       cfg,
		logger:       logger,
		entryService: entryservice.NewEntryService(db, cache),
		gate:         gate,
		cache:        cache,
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
