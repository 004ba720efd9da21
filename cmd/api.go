package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/extremtechniker/gokey/api"
	"github.com/extremtechniker/gokey/cache"
	"github.com/extremtechniker/gokey/db"
	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/secret"
	"github.com/extremtechniker/gokey/session"
	"github.com/extremtechniker/gokey/util"
	"github.com/spf13/cobra"
)

func ApiCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start HTTP API for session management",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The env file is loaded by now, so this sees its values.
			if !cmd.Flags().Changed("session-backend") {
				backend = util.MustGetenv("SESSION_BACKEND", backend)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAPI(ctx, backend)
		},
	}

	cmd.Flags().StringVar(&backend, "session-backend", "cookie", "Session store (cookie, redis, postgres); defaults to $SESSION_BACKEND")
	return cmd
}

// runAPI serves until ctx is done, then shuts the server down gracefully.
func runAPI(ctx context.Context, backend string) error {
	store, closeStore, err := openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer closeStore()

	key := secret.Process()
	ttl := util.GetenvDuration("SESSION_TTL", session.DefaultTTL)
	sessions := session.NewManager(store, session.SigningKey(key), ttl)
	srv := api.NewServer(util.MustGetenv("HTTP_SERVE", ":8080"), key, sessions)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Logger.Infof("shutting down HTTP API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// openStore connects the named session backend. The returned func releases it.
func openStore(ctx context.Context, backend string) (session.Store, func(), error) {
	switch strings.ToLower(backend) {
	case "cookie":
		return session.CookieStore{}, func() {}, nil
	case "redis":
		if err := cache.InitRedis(ctx); err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(cache.Rdb), func() { _ = cache.Rdb.Close() }, nil
	case "postgres":
		if err := db.InitPostgres(ctx); err != nil {
			return nil, nil, err
		}
		store := db.NewPgStore(db.PgPool)
		go store.RunPurger(ctx, util.GetenvDuration("SESSION_PURGE_INTERVAL", db.DefaultPurgeInterval))
		return store, db.ClosePostgres, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", backend)
	}
}
