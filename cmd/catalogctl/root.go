package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/config"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/database"
)

var version = "dev"

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Component catalog and build checker",
		Long: `catalogctl maintains the PC component catalog and checks builds offline.

Catalog commands (import, export, stats, archive) use the configured
postgres database, or a local sqlite file with --sqlite.

Build commands (normalize, validate, power) need no database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("sqlite", config.GetEnvOrDefault("CATALOG_SQLITE", ""),
		"Use a local sqlite catalog file instead of postgres (env CATALOG_SQLITE)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPowerCmd())

	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// tryJSON prints v as indented JSON when --json is set.
func tryJSON(cmd *cobra.Command, v interface{}) (bool, error) {
	jsonFlag, _ := cmd.Flags().GetBool("json")
	if !jsonFlag {
		return false, nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return true, nil
}

func cmdLogger(cmd *cobra.Command) *zap.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// openCatalog connects to the catalog database and returns its service
// together with a cleanup func.
func openCatalog(cmd *cobra.Command) (*service.CatalogService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := cmdLogger(cmd)

	path, _ := cmd.Flags().GetString("sqlite")
	var db *gorm.DB
	if path != "" {
		db, err = database.OpenSQLite(path)
	} else {
		db, err = database.Open(cfg.Database, gormlogger.Silent)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}

	repo := repository.NewCatalogRepository(db)
	svc := service.NewCatalogService(repo, service.NewMinIOClient(cfg.MinIO, logger), cfg.MinIO.Bucket, logger)
	cleanup := func() {
		database.Close(db)
		logger.Sync()
	}
	return svc, cleanup, nil
}
