// Command sweeper expires overdue pending reservations and releases
// their held seats.  It is meant to run from cron; --dry-run reports
// without writing, --force ignores the grace period.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/airline-reservation/internal/config"
	"github.com/iliyamo/airline-reservation/internal/database"
	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/service"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would expire without writing")
	force := flag.Bool("force", false, "ignore the grace period")
	grace := flag.Duration("grace", 0, "override the grace period (default from SWEEP_GRACE)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Printf("database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	opts := service.SweeperOptions{Grace: cfg.SweepGrace, Force: *force, DryRun: *dryRun}
	if *grace > 0 {
		opts.Grace = *grace
	}
	sweeper := service.NewSweeper(repository.NewStore(db), opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := sweeper.Run(ctx)
	if err != nil {
		log.Printf("sweep failed: %v", err)
		os.Exit(1)
	}

	mode := "sweep"
	if report.DryRun {
		mode = "dry-run"
	}
	log.Printf("%s done: scanned=%d expired=%d skipped=%d failed=%d",
		mode, report.Scanned, report.Expired, report.Skipped, report.Failed)
}
