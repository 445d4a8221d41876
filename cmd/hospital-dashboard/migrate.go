package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospital/dashboard/internal/config"
	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/migrations"
)

// sqlFS uses dir when it exists and the embedded set otherwise.
func sqlFS(dir string, embedded fs.FS) (fs.FS, string) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir), dir
	}
	return embedded, "embedded"
}

// seedAllowed refuses the demo seed outside development unless forced. The
// seeded staff ids are valid logins.
func seedAllowed(env string, force bool) error {
	if env == "development" || force {
		return nil
	}
	return fmt.Errorf("refusing to seed demo staff with ENV=%q; use --force to override", env)
}

type migrateFunc func(ctx context.Context, m *db.Migrator, schema string, cfg *config.Config) error

func withMigrator(cmd *cobra.Command, embedded fs.FS, run migrateFunc) error {
	schema, _ := cmd.Flags().GetString("schema")
	dir, _ := cmd.Flags().GetString("dir")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mgr := newManager(cfg, newLogger(cfg))
	defer mgr.Close()

	ctx := context.Background()
	pool, err := mgr.Pool(ctx)
	if err != nil {
		return err
	}

	fsys, source := sqlFS(dir, embedded)
	fmt.Printf("SQL from %s, schema %s\n", source, schema)
	return run(ctx, db.NewMigrator(pool, fsys), schema, cfg)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, migrations.FS, func(ctx context.Context, m *db.Migrator, schema string, _ *config.Config) error {
				count, err := m.Up(ctx, schema)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, migrations.FS, func(ctx context.Context, m *db.Migrator, schema string, _ *config.Config) error {
				statuses, err := m.Status(ctx, schema)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				fmt.Println("---------- ---------------------------------------- ---------- --------------------")
				for _, s := range statuses {
					status := "pending"
					appliedAt := ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(statusCmd)

	// migrate seed
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo reference data (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return withMigrator(cmd, migrations.SeedFS, func(ctx context.Context, m *db.Migrator, schema string, cfg *config.Config) error {
				if err := seedAllowed(cfg.Env, force); err != nil {
					return err
				}
				count, err := m.Seed(ctx, schema)
				if err != nil {
					return fmt.Errorf("seed failed: %w", err)
				}
				fmt.Printf("Applied %d seed file(s).\n", count)
				return nil
			})
		},
	}
	seedCmd.Flags().Bool("force", false, "Seed even when ENV is not development")
	cmd.AddCommand(seedCmd)

	for _, c := range []*cobra.Command{upCmd, statusCmd} {
		c.Flags().String("schema", "public", "Target schema for migrations")
		c.Flags().String("dir", "./migrations", "Path to migrations directory (embedded set when missing)")
	}
	seedCmd.Flags().String("schema", "public", "Target schema for the seed data")
	seedCmd.Flags().String("dir", "./migrations/seed", "Path to seed directory (embedded set when missing)")
	return cmd
}
