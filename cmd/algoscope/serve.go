package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/pkg/adapters/file"
	httpAdapter "github.com/aretw0/algoscope/pkg/adapters/http"
	"github.com/aretw0/algoscope/pkg/adapters/loam"
	"github.com/aretw0/algoscope/pkg/adapters/memory"
	"github.com/aretw0/algoscope/pkg/adapters/redis"
	"github.com/aretw0/algoscope/pkg/observability"
	"github.com/aretw0/algoscope/pkg/ports"
	"github.com/aretw0/algoscope/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the algorithm catalogue, paced runs with an SSE step stream and the
workspace editor over a JSON API. Workspaces live in Redis when redis.addr is
configured, in workspaces.dir when that is set, and in memory otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			e.cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)
		lab := e.newLab(algoscope.WithLifecycleHooks(metrics.Hooks()))

		store, locker, closeStore, err := openStore(ctx, e)
		if err != nil {
			return err
		}
		defer closeStore()

		sessOpts := []session.Option{session.WithLogger(e.logger)}
		if locker != nil {
			sessOpts = append(sessOpts, session.WithLocker(locker))
		}
		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(e.logger),
			httpAdapter.WithMetrics(reg),
			httpAdapter.WithBaseContext(ctx),
			httpAdapter.WithWorkspaces(session.NewManager(store, sessOpts...)),
		}
		if e.cfg.Scenarios.Dir != "" {
			lib, err := loam.Open(e.cfg.Scenarios.Dir)
			if err != nil {
				return err
			}
			opts = append(opts, httpAdapter.WithScenarios(lib))
		}
		server := httpAdapter.NewServer(lab, opts...)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", e.cfg.Server.Port),
			Handler: server.Routes(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			e.logger.Info("Starting Algoscope Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			e.logger.Info("Start shutdown")
			server.Driver.Cancel()

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				e.logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			server.Driver.Wait()
			e.logger.Info("Algoscope Server stopped gracefully")
			return nil
		}
	},
}

// openStore picks Redis, then a workspace directory, then memory.
func openStore(ctx context.Context, e *env) (ports.WorkspaceStore, ports.DistributedLocker, func(), error) {
	if e.cfg.Redis.Addr == "" {
		if dir := e.cfg.Workspaces.Dir; dir != "" {
			e.logger.Info("Using file workspace store", "dir", dir)
			return file.New(dir), nil, func() {}, nil
		}
		e.logger.Info("Using in-memory workspace store")
		return memory.NewStore(), nil, func() {}, nil
	}

	prefix := e.cfg.Redis.Prefix
	if prefix == "" {
		prefix = redis.DefaultPrefix
	}
	store := redis.New(e.cfg.Redis.Addr, e.cfg.Redis.Password, e.cfg.Redis.DB,
		redis.WithTTL(e.cfg.Redis.TTL),
		redis.WithPrefix(prefix),
	)
	if err := store.Client().Ping(ctx).Err(); err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("redis %s: %w", e.cfg.Redis.Addr, err)
	}
	e.logger.Info("Using Redis workspace store", "addr", e.cfg.Redis.Addr, "prefix", prefix)
	closeFn := func() {
		if err := store.Close(); err != nil {
			e.logger.Warn("Failed to close Redis client", "error", err)
		}
	}
	return store, redis.NewLocker(store.Client(), prefix), closeFn, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
