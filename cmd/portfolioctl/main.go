package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/yungbote/portfolio-backend/internal/data/db"
	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type ctxKey struct{}

func loggerFrom(ctx context.Context) *logger.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*logger.Logger); ok {
		return log
	}
	log, _ := logger.New("test")
	return log
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	_ = godotenv.Load()
	log, err := logger.New(cmd.String("log-mode"))
	if err != nil {
		return ctx, fmt.Errorf("init logger: %w", err)
	}
	return context.WithValue(ctx, ctxKey{}, log), nil
}

func after(ctx context.Context, _ *cli.Command) error {
	loggerFrom(ctx).Sync()
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:            "portfolioctl",
		Usage:           "maintenance tasks for the portfolio backend",
		HideHelpCommand: true,
		Before:          before,
		After:           after,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-mode", Value: "development", Sources: cli.EnvVars("LOG_MODE"), Usage: "logger `MODE` (development, production, test)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Inserts the color themes, font themes and templates of a catalog file",
				Action: runSeed,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "catalog", Required: true, Usage: "catalog `FILE` (YAML)"},
					&cli.StringFlag{Name: "db-driver", Value: "postgres", Sources: cli.EnvVars("DB_DRIVER"), Usage: "database `DRIVER` (postgres, sqlite)"},
					&cli.StringFlag{Name: "sqlite-path", Value: "portfolio.db", Sources: cli.EnvVars("SQLITE_PATH"), Usage: "sqlite database `FILE`"},
				},
			},
			{
				Name:   "preview",
				Usage:  "Rasterizes a catalog template to a PNG without touching the database",
				Action: runPreview,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "catalog", Required: true, Usage: "catalog `FILE` (YAML)"},
					&cli.StringFlag{Name: "template", Required: true, Usage: "template `NAME`"},
					&cli.StringFlag{Name: "color", Usage: "color theme `NAME` from the catalog"},
					&cli.StringFlag{Name: "font", Usage: "font theme `NAME` from the catalog"},
					&cli.IntFlag{Name: "max-width", Value: 640, Usage: "maximum output width in `PIXELS`"},
					&cli.StringFlag{Name: "out", Value: "preview.png", Usage: "destination `FILE`"},
				},
			},
		},
	}
}

func runSeed(ctx context.Context, cmd *cli.Command) (err error) {
	log := loggerFrom(ctx)

	c, err := services.LoadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}
	store, err := db.Open(log, cmd.String("db-driver"), cmd.String("sqlite-path"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		return err
	}
	sqlDB, err := store.DB().DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() {
		err = multierr.Append(err, sqlDB.Close())
	}()

	theDB := store.DB()
	catalog := services.NewCatalogService(theDB, log,
		repos.NewColorThemeRepo(theDB, log),
		repos.NewFontThemeRepo(theDB, log),
		repos.NewTemplateRepo(theDB, log),
	)
	res, err := catalog.Seed(ctx, c)
	if err != nil {
		return err
	}
	log.Info("Catalog seeded", "colors", res.Colors, "fonts", res.Fonts, "templates", res.Templates)
	return nil
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	log := loggerFrom(ctx)

	c, err := services.LoadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}
	img, err := renderPreview(ctx, c, previewOptions{
		Template: cmd.String("template"),
		Color:    cmd.String("color"),
		Font:     cmd.String("font"),
		MaxWidth: int(cmd.Int("max-width")),
	})
	if err != nil {
		return err
	}
	out := cmd.String("out")
	if err := os.WriteFile(out, img, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("Preview written", "template", cmd.String("template"), "file", out, "bytes", len(img))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "portfolioctl: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newCommand().Run(ctx, os.Args)
}
