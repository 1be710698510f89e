package main

import (
	"context"
	"fmt"
	"log"
	"os"

	analysisProcessor "outreach-server/internal/analysis/processor"
	"outreach-server/internal/bootstrap"
	"outreach-server/internal/config"
	"outreach-server/internal/observability"
	"outreach-server/internal/seed"
	"outreach-server/internal/server"
	"outreach-server/internal/store"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "outreach-server",
		Usage: "Minimind outreach API server and maintenance commands",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			seedCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, false)
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.Bool("migrate"))
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withStore(ctx, func(s *store.Store) error {
						if err := s.MigrateUp(ctx); err != nil {
							return err
						}
						return printVersion(ctx, s)
					})
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withStore(ctx, func(s *store.Store) error {
						if err := s.MigrateDown(ctx); err != nil {
							return err
						}
						return printVersion(ctx, s)
					})
				},
			},
			{
				Name:  "status",
				Usage: "Print applied and pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withStore(ctx, func(s *store.Store) error {
						return s.MigrationStatus(ctx)
					})
				},
			},
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create demo accounts, pages and a campaign",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger()
			defer logger.Sync()

			s, err := store.New(cfg.Database.ConnectionString(), logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer s.Close()

			seeder := seed.New(s, analysisProcessor.NewScorer(nil), cfg.Outreach.AgencyName, logger)
			summary, err := seeder.Run(ctx)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			cyan := color.New(color.FgCyan).SprintFunc()
			fmt.Println(green("Seed complete"))
			fmt.Printf("  users created:    %s\n", cyan(summary.UsersCreated))
			fmt.Printf("  pages seeded:     %s\n", cyan(summary.PagesSeeded))
			fmt.Printf("  analyses created: %s\n", cyan(summary.AnalysesCreated))
			fmt.Printf("  drafts created:   %s\n", cyan(summary.DraftsCreated))
			fmt.Printf("  campaign:         %s\n", cyan(summary.Campaign.Name))
			fmt.Printf("  demo password:    %s\n", color.YellowString(seed.DemoPassword))
			return nil
		},
	}
}

func runServer(ctx context.Context, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger()
	defer logger.Sync()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to initialize dependencies", err)
		return err
	}

	if migrate {
		if err := deps.Store.MigrateUp(ctx); err != nil {
			deps.Cleanup()
			return err
		}
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()
	if err := srv.Start(ctx); err != nil {
		deps.Cleanup()
		return err
	}

	return srv.WaitForShutdown(ctx)
}

func withStore(ctx context.Context, fn func(s *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger()
	defer logger.Sync()

	s, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

func printVersion(ctx context.Context, s *store.Store) error {
	version, err := s.MigrationVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s schema at version %s\n", color.GreenString("ok"), color.CyanString("%d", version))
	return nil
}
