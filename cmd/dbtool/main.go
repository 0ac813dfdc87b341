package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"shop-delivery-service/internal/adapters/repositories"
	"shop-delivery-service/internal/api/dto"
	"shop-delivery-service/internal/config"
	"shop-delivery-service/internal/platform/db"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Manage the shop delivery database",
	Long:  `dbtool initializes the schema, loads shop seed data and inspects weekly deliveries.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		obs.SetupLogging("info", false)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, _ *repositories.SQLShopRepository) error {
			logrus.Info("Initializing database schema...")
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			logrus.Info("Schema ready.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load shops from the seed JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, repo *repositories.SQLShopRepository) error {
			seedPath, _ := cmd.Flags().GetString("file")
			if seedPath == "" {
				seedPath = loadedConfig.SeedPath
			}

			if err := repositories.InitSchema(ctx, conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			logrus.WithField("seed_path", seedPath).Info("Seeding database...")
			if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			logrus.Info("Seeding complete.")
			return nil
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the deliveries due in a week as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, _ *sql.DB, repo *repositories.SQLShopRepository) error {
			week, _ := cmd.Flags().GetInt("week")
			if week < 0 {
				week = services.CurrentWeek()
			}

			shops, err := repo.ListShops(ctx)
			if err != nil {
				return err
			}
			deliveries := services.DeliveriesForWeek(shops, week)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.ListDeliveriesResponse{
				Week:        week,
				TotalVolume: services.TotalVolume(deliveries),
				Deliveries:  dto.FromDeliveries(deliveries),
			})
		})
	},
}

var loadedConfig *config.Config

func withDB(ctx context.Context, fn func(context.Context, *sql.DB, *repositories.SQLShopRepository) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	loadedConfig = cfg

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn, repositories.NewSQLShopRepository(conn, db.Dialect(cfg.DBDriver)))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	seedCmd.Flags().String("file", "", "seed JSON path (default SEED_PATH)")
	weekCmd.Flags().Int("week", -1, "week number (default current week)")

	rootCmd.AddCommand(initCmd, seedCmd, weekCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
