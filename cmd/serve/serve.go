// Package serve handles the HTTP server command
package serve

import (
	"context"
	"os/signal"
	"syscall"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/api"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Addr overrides server.addr
var Addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the valuation API over HTTP",
	Long: `Serve summaries, history, records and exports as JSON over HTTP until
interrupted. The listen address and allowed CORS origins come from the
server section of the configuration.`,
	Args: cobra.NoArgs,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&Addr, "addr", "", "Listen address (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	addr := root.GetConfig().Server.Addr
	if Addr != "" {
		addr = Addr
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(root.GetContainer())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx, addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		root.Log.Info("Shutdown requested")
		return nil
	})
	return g.Wait()
}

// contextOrBackground keeps serveFunc usable when cobra runs without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
