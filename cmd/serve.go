package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, vault, quiz and store over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		addr := d.Config.Listen
		if cmd.Flags().Changed("listen") {
			addr, _ = cmd.Flags().GetString("listen")
		}
		var opts []api.Option
		if origins, _ := cmd.Flags().GetStringSlice("allow-origin"); len(origins) > 0 {
			opts = append(opts, api.WithAllowedOrigins(origins...))
		}
		return api.NewServer(d, opts...).ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Address to listen on (overrides LUMI_LISTEN)")
	serveCmd.Flags().StringSlice("allow-origin", nil, "CORS origins allowed to call the API")
}
