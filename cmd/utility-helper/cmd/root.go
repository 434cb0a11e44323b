package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Neruzzz/utility-helper/internal/config"
	"github.com/Neruzzz/utility-helper/internal/directory"
	"github.com/Neruzzz/utility-helper/internal/functions"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "utility-helper",
	Short: "Date, time and maths functions for chat assistants",
	Long: `utility-helper exposes calendar arithmetic and calculator functions
to chat platforms, over HTTP or straight from the command line.

Functions:
  datediff_function         - difference between two dates
  datetime_function         - date relative to a reference date
  getnextdate_function      - next occurrence of a weekday
  math_helper_function      - one operator applied to two numbers
  math_expression_function  - evaluate an arithmetic expression
  get_today_date            - current date and time`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		v := config.New()
		if f := cmd.Flags().Lookup("addr"); f != nil {
			_ = v.BindPFlag("http.addr", f)
		}
		var err error
		cfg, err = config.Load(v, cfgFile)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// openDirectory returns the user directory: MongoDB when mongo.uri is set,
// otherwise every user gets the configured default zone.
func openDirectory(ctx context.Context) (directory.Directory, func(), error) {
	if cfg.Mongo.URI == "" {
		slog.Info("No mongo.uri configured, using default timezone for all users", "tz", cfg.Functions.DefaultTimezone)
		return directory.Fixed{
			Name:          cfg.Functions.DefaultTimezone,
			OffsetSeconds: cfg.Functions.DefaultOffsetSeconds,
		}, func() {}, nil
	}

	client, err := directory.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	return directory.NewMongo(coll), closeFn, nil
}

func newService(dir directory.Directory) *functions.Service {
	return functions.New(dir,
		functions.WithMode(cfg.Mode()),
		functions.WithLegacyWeekdayShift(cfg.Functions.LegacyWeekdayShift),
	)
}
