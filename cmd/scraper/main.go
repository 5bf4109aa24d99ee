package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/config"
	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/portal"
	"go-jobdemand-scraper/internal/reporter"
	"go-jobdemand-scraper/internal/scraper"
)

func main() {
	var (
		skillsFlag = flag.String("skills", "", "comma separated skills, e.g. \"python,django\"")
		configPath = flag.String("config", "", "path to config.yaml (default $CONFIG_PATH or "+config.DefaultPath+")")
		install    = flag.Bool("install", false, "install the playwright driver and chromium before scraping")
		notify     = flag.Bool("notify", false, "send the summary to telegram")
		saveDir    = flag.String("save", "", "also write the results to <dir>/demand-YYYY-MM-DD.json")
	)
	flag.Parse()

	if err := run(*skillsFlag, *configPath, *install, *notify, *saveDir); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(skillsFlag, configPath string, install, notify bool, saveDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if install {
		log.Info("installing playwright driver")
		if err := browser.Install(); err != nil {
			return fmt.Errorf("install playwright: %w", err)
		}
	}

	var tg *reporter.TelegramReporter
	if notify {
		if !cfg.Telegram.Enabled() {
			return fmt.Errorf("-notify needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
		if tg, err = reporter.NewTelegramReporter(cfg.Telegram); err != nil {
			return err
		}
	}

	portals := portal.Registry(cfg.Portals)
	log.Info("config loaded", "portals", portal.Names(portals), "max_sessions", cfg.MaxSessions)

	orch := scraper.NewOrchestrator(
		portals,
		browser.NewPlaywrightLauncher(cfg.BrowserOptions(), log),
		log,
		scraper.WithMaxSessions(cfg.MaxSessions),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	skills := scraper.SplitSkills(skillsFlag)
	outcomes, err := orch.ScrapeAll(ctx, skills)
	if err != nil {
		if tg != nil {
			if sendErr := tg.SendError(err); sendErr != nil {
				log.Warn("failed to send error to telegram", "err", sendErr)
			}
		}
		return err
	}

	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(data))

	if saveDir != "" {
		path, err := saveResults(saveDir, data, time.Now())
		if err != nil {
			log.Warn("failed to save results", "err", err)
		} else {
			log.Info("results saved", "path", path)
		}
	}

	if tg != nil {
		if err := tg.SendDemand(skills, outcomes); err != nil {
			log.Warn("failed to send summary to telegram", "err", err)
		}
	}
	return nil
}

func saveResults(dir string, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("demand-%s.json", now.Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
