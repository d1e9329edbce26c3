package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ylos-analyzer/internal/analysis"
	"ylos-analyzer/internal/api"
	"ylos-analyzer/internal/monitor"
	"ylos-analyzer/pkg/calendar"
	"ylos-analyzer/pkg/config"
	"ylos-analyzer/pkg/db"
	"ylos-analyzer/pkg/i18n"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(i18n.Get("ConfigLoadFailed"), err)
	}

	i18n.SetLanguage(i18n.Language(cfg.Language))
	log.Println(i18n.Get("Starting"))
	log.Printf(i18n.Get("ConfigLoaded"), cfg.Port)

	buildVersion := os.Getenv("APP_VERSION")
	if buildVersion == "" {
		buildVersion = "v1.0-dev"
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf(i18n.Get("DBInitFailed"), err)
	}
	defer database.Close()
	if err := db.ApplyMigrations(database); err != nil {
		log.Fatalf(i18n.Get("DBMigrationsFailed"), err)
	}

	// Rule profiles (built-in defaults, optionally overridden from YAML)
	profiles, err := analysis.LoadProfiles(cfg.RulesPath)
	if err != nil {
		log.Fatalf(i18n.Get("RulesFileFailed"), cfg.RulesPath, err)
	}
	if cfg.RulesPath != "" {
		log.Printf(i18n.Get("RulesFileLoaded"), cfg.RulesPath)
	}

	// Economic calendar (optional capability)
	var events analysis.EventSource
	if cfg.FinnhubAPIKey != "" {
		client, err := calendar.NewClient(cfg.CalendarBaseURL, cfg.FinnhubAPIKey, cfg.CalendarTimeout, cfg.CalendarCacheTTL)
		if err != nil {
			log.Fatalf(i18n.Get("APIServerError"), err)
		}
		events = client
		log.Println(i18n.Get("CalendarEnabled"))
	} else {
		log.Println(i18n.Get("CalendarDisabled"))
	}

	sysMetrics := monitor.NewSystemMetrics()
	log.Println(i18n.Get("MetricsInit"))

	analyzer := analysis.New(profiles, events, cfg.CalendarTimeout)

	server := api.NewServer(cfg, database, analyzer, sysMetrics, api.SystemMeta{
		Version:         buildVersion,
		CalendarEnabled: events != nil,
		Language:        cfg.Language,
	})
	go func() {
		log.Printf(i18n.Get("ServerListening"), cfg.Port)
		if err := server.Start(":" + cfg.Port); err != nil {
			log.Fatalf(i18n.Get("APIServerError"), err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println(i18n.Get("ShuttingDown"))

	// Give in-flight requests a moment before the process exits.
	time.Sleep(200 * time.Millisecond)
}
