package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/adapters/sqlite"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/chatbot"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/config"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/ingest"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "investchat",
		Short: "Investment spreadsheet ingestion and natural-language query chatbot",
	}

	rootCmd.AddCommand(
		newIngestCmd(),
		newChatCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads .env (when present) and the environment configuration.
func loadConfig() (*config.Config, *internal.Logger, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewDefaultLogger(), nil
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Read the source spreadsheet and rebuild the investment table",
		Long: `Read the conventionally-named data file from the working directory
(xlsx first, csv fallback), locate the header row, clean the column names,
and replace the persisted table. Failures print a diagnostic and leave the
previous table untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}

			store, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}
			defer store.Close()

			pipeline := ingest.NewPipeline(cfg.Data.SourceBase, cfg.Database.TableName, store, logger)
			result, err := pipeline.Run(context.Background())
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}

			fmt.Printf("Database: %s\n", cfg.Database.Path)
			fmt.Printf("Records:  %d\n", result.RowsInserted)
			fmt.Printf("Columns:  %d\n", len(result.Columns))
			return nil
		},
	}
}

// openEngine builds the store and an engine over a fresh schema snapshot.
func openEngine(cfg *config.Config, logger *internal.Logger) (*sqlite.Store, *chatbot.Engine, sheet.Schema, error) {
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, sheet.Schema{}, err
	}

	schema, err := store.Schema(context.Background(), cfg.Database.TableName)
	if err != nil {
		store.Close()
		return nil, nil, sheet.Schema{}, fmt.Errorf("%w (run 'investchat ingest' first)", err)
	}

	engine := chatbot.New(cfg.Database.TableName, schema, store, logger)
	return store, engine, schema, nil
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Answer the sample questions, then start the interactive chat loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}

			store, engine, _, err := openEngine(cfg, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}
			defer store.Close()

			runSelfTest(engine)
			runREPL(engine)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			store, engine, schema, err := openEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			server, err := ui.NewServer(engine, store, cfg.Database.TableName, schema, logger)
			if err != nil {
				return err
			}
			return server.ListenAndServe(cfg.Server.Port)
		},
	}
}
