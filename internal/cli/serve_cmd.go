package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/calebhart/gantry/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr string
		root string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated timelines over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{Addr: addr, Root: root})
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s\n", root, addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&root, "root", "dist", "directory of generated HTML to serve")

	return cmd
}
