package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	"marga.transitlab.org/internal/app"
	"marga.transitlab.org/internal/appconf"
	"marga.transitlab.org/internal/logging"
	"marga.transitlab.org/internal/oracle"
	"marga.transitlab.org/internal/restapi"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/session"
	"marga.transitlab.org/internal/transitdata"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	var cfg appconf.Config
	var envFlag, apiKeysFlag string

	flag.IntVar(&cfg.Port, "port", envInt("MARGA_PORT", 4000), "API server port")
	flag.StringVar(&envFlag, "env", appconf.GetEnv("MARGA_ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", appconf.GetEnv("MARGA_API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	flag.StringVar(&cfg.DataDir, "data-dir", appconf.GetEnv("MARGA_DATA_DIR", "testdata"), "Directory holding transit_lines.json and fares.json")
	flag.IntVar(&cfg.RateLimit, "rate-limit", envInt("MARGA_RATE_LIMIT", 100), "Requests per second allowed per API key")
	flag.StringVar(&cfg.OracleToken, "mapbox-token", appconf.GetEnv("MAPBOX_ACCESS_TOKEN", ""), "Mapbox access token for live distance lookups")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	if apiKeysFlag != "" {
		cfg.ApiKeys = strings.Split(apiKeysFlag, ",")
		for i := range cfg.ApiKeys {
			cfg.ApiKeys[i] = strings.TrimSpace(cfg.ApiKeys[i])
		}
	}

	var logger *slog.Logger
	if cfg.Env == appconf.Production {
		logger = logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	store, err := transitdata.Load(cfg.DataDir)
	if err != nil {
		logger.Error("failed to load transit data", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	var orc oracle.Oracle = oracle.Fixed{}
	if cfg.OracleToken != "" {
		orc = oracle.NewMapbox(cfg.OracleToken, "", logger)
	}

	engine, err := routing.NewEngine(store, orc, routing.SystemClock, logger)
	if err != nil {
		logger.Error("failed to build routing engine", "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore(session.DefaultTTL)
	defer sessions.Stop()

	application := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Engine:   engine,
		Sessions: sessions,
	}

	api := restapi.NewRestAPI(application)
	router := httprouter.New()
	api.SetRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.WithSecurityHeaders(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "cities", engine.Cities())
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
