// Command catalog-import loads a YAML or JSON catalog into the SQLite
// database and prints per-category counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/stiyes/fpvforge/internal/adapters/repository"
	"github.com/stiyes/fpvforge/internal/config"
	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/pkg/logger"
)

type options struct {
	dbPath   string
	seedPath string
	dryRun   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.dbPath, "db", cfg.DatabasePath, "SQLite database to import into")
	flag.StringVar(&opts.seedPath, "seed", cfg.SeedPath, "Catalog file (YAML or JSON); the bundled catalog when empty")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Validate and count without writing")
	flag.Parse()

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel), logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, opts, os.Stdout); err != nil {
		logger.Get().Error(ctx, "catalog import failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	log := logger.Named("catalog-import")

	var (
		components []model.Component
		err        error
	)
	if opts.seedPath != "" {
		components, err = repository.LoadSeedFile(opts.seedPath)
	} else {
		components, err = repository.DefaultSeed()
	}
	if err != nil {
		return err
	}

	if !opts.dryRun {
		store, err := repository.NewSQLiteStore(ctx, opts.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Upsert(ctx, components...); err != nil {
			return err
		}
		total, err := store.Count(ctx)
		if err != nil {
			return err
		}
		log.Info(ctx, "catalog imported",
			logger.String("db", opts.dbPath),
			logger.Int("imported", len(components)),
			logger.Int("total", total),
		)
	}

	printCounts(out, components)
	return nil
}

// printCounts writes one "category<TAB>count" line per present category
// in catalog display order, then the total.
func printCounts(out io.Writer, components []model.Component) {
	counts := make(map[model.Category]int)
	for _, c := range components {
		counts[c.Category]++
	}
	for _, cat := range model.Categories() {
		if n := counts[cat]; n > 0 {
			fmt.Fprintf(out, "%s\t%d\n", cat, n)
		}
	}
	fmt.Fprintf(out, "total\t%d\n", len(components))
}
