package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/footlights/internal/server"
	"github.com/matzehuels/footlights/pkg/cache"
	"github.com/matzehuels/footlights/pkg/imagesize"
	"github.com/matzehuels/footlights/pkg/pipeline"
)

// apiKeyPrefix scopes the server's cache keys away from the CLI's.
const apiKeyPrefix = "api:"

type serveOpts struct {
	addr        string
	allowRemote bool
	origins     []string
	maxBody     int64
	timeout     time.Duration
}

// serveCommand creates the serve command, which runs the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		maxBody: server.DefaultMaxBodyBytes,
		timeout: server.DefaultRenderTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve exposes POST /v1/render, GET /v1/default and GET /healthz.

Documents posted to the server cannot reference local files. Remote image
URLs are refused unless --allow-remote is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.allowRemote, "allow-remote", false, "allow http(s) image sources")
	cmd.Flags().StringSliceVar(&opts.origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum document size in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cc, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer cc.Close()

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix)
	proberOpts := []imagesize.Option{
		imagesize.WithoutLocalFiles(),
		imagesize.WithKeyer(keyer),
		imagesize.WithLogger(logger),
	}
	if opts.allowRemote {
		proberOpts = append(proberOpts, imagesize.WithRemote(nil, cc))
	}

	runner := pipeline.NewRunner(cc, imagesize.NewProber(proberOpts...), logger)
	runner.Keyer = keyer

	srv := server.New(runner,
		server.WithLogger(logger),
		server.WithMaxBodyBytes(opts.maxBody),
		server.WithRenderTimeout(opts.timeout),
		server.WithAllowedOrigins(opts.origins...),
	)
	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}
