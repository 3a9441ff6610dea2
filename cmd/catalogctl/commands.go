package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tigermarine/internal/app"
	"tigermarine/internal/config"
	"tigermarine/internal/domain/catalog"
	"tigermarine/internal/logger"
)

type runtime struct {
	app *app.App
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operator tasks for the Tiger Marine catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dsn, _ := cmd.Flags().GetString("database"); dsn != "" {
				cfg.DatabaseURL = dsn
			}
			if mediaRoot, _ := cmd.Flags().GetString("media-root"); mediaRoot != "" {
				cfg.MediaRoot = mediaRoot
			}
			rt.log, err = logger.New(cfg.AppEnv)
			if err != nil {
				return err
			}
			rt.app, err = app.New(cfg, rt.log)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
			if rt.app != nil {
				return rt.app.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().String("database", "", "database URL (overrides DATABASE_URL)")
	root.PersistentFlags().String("media-root", "", "media root directory (overrides MEDIA_ROOT)")

	root.AddCommand(
		newSeedAdminCmd(rt),
		newImportCmd(rt),
		newPopulateMediaCmd(rt),
	)
	return root
}

func newSeedAdminCmd(rt *runtime) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := rt.app.Config
			if email == "" {
				email = cfg.AdminEmail
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if name == "" {
				name = cfg.AdminName
			}
			created, err := rt.app.Admins.EnsureAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists, skipped\n", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default ADMIN_NAME)")
	return cmd
}

func newImportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import <models.json>",
		Short: "Import models from a JSON array, creating missing categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readImportFile(args[0])
			if err != nil {
				return err
			}
			report, err := rt.app.Catalog.ImportModels(cmd.Context(), items)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported: %d\nskipped (already exist): %d\nfailed: %d\n",
				report.Imported, report.Skipped, report.Failed)
			if len(report.CreatedCategories) > 0 {
				fmt.Fprintf(out, "created categories: %s\n", strings.Join(report.CreatedCategories, ", "))
			}
			return nil
		},
	}
}

func newPopulateMediaCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "populate-media",
		Short: "Fill model image, gallery, video and interior filenames from the media folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := rt.app.Catalog.PopulateMedia(cmd.Context(), rt.app.Uploads)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "updated: %d\n", report.Updated)
			if len(report.Skipped) > 0 {
				fmt.Fprintf(out, "skipped (no images): %s\n", strings.Join(report.Skipped, ", "))
			}
			return nil
		},
	}
}

// readImportFile accepts a JSON array of models, an object with a "models"
// array, or a single model object.
func readImportFile(path string) ([]catalog.ImportModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []catalog.ImportModel
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var wrapped struct {
		Models []catalog.ImportModel `json:"models"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Models != nil {
		return wrapped.Models, nil
	}
	var single catalog.ImportModel
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return []catalog.ImportModel{single}, nil
}
