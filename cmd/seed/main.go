// Command seed fills the database with random users, posts and likes.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/seed"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		users      int
		maxPosts   int
		maxLikes   int
		migrate    bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Create random users, posts and likes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})

			flags := cmd.Flags()
			if flags.Changed("users") {
				cfg.Seed.NumberOfUsers = users
			}
			if flags.Changed("max-posts") {
				cfg.Seed.MaxPostsPerUser = maxPosts
			}
			if flags.Changed("max-likes") {
				cfg.Seed.MaxLikesPerUser = maxLikes
			}
			if err := cfg.Seed.Validate(); err != nil {
				return err
			}

			db, err := config.ConnectDatabase(cfg.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if migrate {
				if err := config.Migrate(db); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := seed.NewBot(db, cfg.Seed, cmd.OutOrStdout()).Run(ctx)
			logging.Info().Int("users", len(results)).Msg("seeding finished")
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (defaults to CONFIG_PATH or ./config.yaml)")
	cmd.Flags().IntVar(&users, "users", 0, "number of users to create (overrides seed.number_of_users)")
	cmd.Flags().IntVar(&maxPosts, "max-posts", 0, "maximum posts per user (overrides seed.max_posts_per_user)")
	cmd.Flags().IntVar(&maxLikes, "max-likes", 0, "maximum likes per user (overrides seed.max_likes_per_user)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run migrations before seeding")

	return cmd
}
