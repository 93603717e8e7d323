package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"salon-booking/internal/config"
	"salon-booking/internal/storage/postgres"
	"salon-booking/pkg/sl"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the bookings schema",
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad()
			if err := postgres.Migrate(cfg.StoragePath); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be > 0")
			}
			cfg := config.MustLoad()
			if err := postgres.Rollback(cfg.StoragePath, steps); err != nil {
				return err
			}
			log.Info("Migrations rolled back", slog.Int("steps", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	root.AddCommand(down)

	if err := root.Execute(); err != nil {
		log.Error("Migration failed", sl.Err(err))
		os.Exit(1)
	}
}
