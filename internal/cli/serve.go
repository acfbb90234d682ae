package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/internal/server"
	"github.com/pagesmith/pagesmith/pkg/assist"
	"github.com/pagesmith/pagesmith/pkg/httputil"
	"github.com/pagesmith/pagesmith/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string  // listen address
	backend    string  // session backend: memory, file, or redis
	redisAddr  string  // redis address for the redis backend
	width      float64 // canvas width
	height     float64 // canvas height
	noCache    bool    // disable markup caching
	sessionTTL time.Duration
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       c.Config.Server.Addr,
		backend:    c.Config.Server.SessionBackend,
		redisAddr:  c.Config.Server.RedisAddr,
		width:      c.Config.Canvas.Width,
		height:     c.Config.Canvas.Height,
		sessionTTL: session.DefaultTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the page builder HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "sessions", opts.backend, "session backend: memory, file, or redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address for --sessions=redis")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable markup caching")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "session lifetime")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	sessions, err := c.newSessionStore(ctx, opts)
	if err != nil {
		return err
	}
	defer sessions.Close()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	assistClient, err := c.newAssistClient()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:         opts.addr,
		CanvasWidth:  opts.width,
		CanvasHeight: opts.height,
		SessionTTL:   opts.sessionTTL,
	}, sessions, runner, assistClient, c.Logger)

	printInfo("Serving on %s (sessions: %s)", opts.addr, opts.backend)

	httpSrv := srv.HTTPServer()
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// newSessionStore creates the session backend selected by flags/config.
func (c *CLI) newSessionStore(ctx context.Context, opts *serveOpts) (session.Store, error) {
	switch opts.backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore("")
	case "redis":
		return session.NewRedisStore(ctx, session.RedisConfig{Addr: opts.redisAddr})
	default:
		return nil, fmt.Errorf("unknown session backend %q (must be memory, file, or redis)", opts.backend)
	}
}

// newAssistClient builds the assist client from config, or nil when no
// endpoint is configured.
func (c *CLI) newAssistClient() (*assist.Client, error) {
	endpoint := c.Config.Assist.Endpoint
	if endpoint == "" {
		return nil, nil
	}
	httpCache, err := httputil.NewCache("", 24*time.Hour)
	if err != nil {
		httpCache = nil
	}
	var headers map[string]string
	if c.Config.Assist.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.Config.Assist.APIKey}
	}
	return assist.NewClient(endpoint, httpCache, headers)
}
