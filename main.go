package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/marcus-crane/steamshame/config"
	"github.com/marcus-crane/steamshame/lookup"
	"github.com/marcus-crane/steamshame/shame"
	"github.com/marcus-crane/steamshame/steam"
	"github.com/marcus-crane/steamshame/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steamshame",
		Short: "Find out how much of your Steam library you've never played",
		Long: `Steam Shame looks up a Steam profile, counts the games that were bought
and never played, and turns that into a shame score.

Running steamshame with no subcommand starts the web server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLookupCmd())

	return cmd
}

// setup loads configuration and builds the lookup service shared by every
// command.
func setup() (config.Config, *lookup.Service, error) {
	if err := godotenv.Load(utils.GetEnv("ENV_FILE", ".env")); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	})))

	policy, err := shame.PolicyByName(cfg.Shame.Policy)
	if err != nil {
		return cfg, nil, err
	}

	client := steam.NewClient(cfg.Steam.APIKey)
	client.HTTPClient = utils.NewHTTPClient(cfg.SteamTimeout())

	return cfg, lookup.NewService(client, policy), nil
}
