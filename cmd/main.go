package main

import (
	"context"
	"fmt"
	"os"

	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/domain"
	"foodgram/internal/utils"
	"foodgram/pkg/ingredient"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect loads the config file named by --config and opens the database.
func connect(cmd *cobra.Command) (*gorm.DB, error) {
	path, _ := cmd.Flags().GetString("config")
	utils.LoadConfig(path)

	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	return db, nil
}

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Recipe sharing backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect(cmd)
		if err != nil {
			return err
		}

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := migration.Migrate(db); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
		}

		app, err := config.NewApp(db)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}

		addr := ":" + utils.GetConfig("SERVER_PORT")
		log.Infof("listening on %s", addr)
		return app.Listen(addr)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect(cmd)
		if err != nil {
			return err
		}
		return migration.Migrate(db)
	},
}

var loadIngredientsCmd = &cobra.Command{
	Use:   "load-ingredients <file.json>",
	Short: "Import ingredients from a JSON array of {name, measurement_unit}",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		var items []domain.IngredientImportItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		db, err := connect(cmd)
		if err != nil {
			return err
		}

		svc := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
		res, err := svc.ImportIngredients(context.Background(), items)
		if err != nil {
			return fmt.Errorf("importing ingredients: %w", err)
		}

		fmt.Printf("Ingredients created: %d\n", res.Created)
		fmt.Printf("Entries skipped: %d\n", res.Skipped)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("migrate", false, "Run migrations before serving")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(loadIngredientsCmd)
}
