package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Neruzzz/utility-helper/internal/directory"
)

var (
	userTZ       string
	userTZLabel  string
	userTZOffset int
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user time zones in the MongoDB directory",
}

var usersSetCmd = &cobra.Command{
	Use:     "set <user-id>",
	Short:   "Store the time zone of a user",
	Example: `  utility-helper users set U123 --tz America/Los_Angeles --tz-label "Pacific Daylight Time" --tz-offset -25200`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Mongo.URI == "" {
			return errors.New("mongo.uri is not configured")
		}
		tz := directory.Timezone{Name: userTZ, Label: userTZLabel, OffsetSeconds: userTZOffset}
		loc, err := tz.Location()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("tz-offset") && tz.Name != "" {
			_, tz.OffsetSeconds = time.Now().In(loc).Zone()
		}

		ctx := cmd.Context()
		client, err := directory.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		m := directory.NewMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		if err := m.Upsert(ctx, args[0], tz); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %+ds)\n", args[0], tz.Name, tz.Label, tz.OffsetSeconds)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show the time zone of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, closeDir, err := openDirectory(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDir()

		tz, err := dir.LookupUserTimezone(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %+ds, dst=%t)\n", args[0], tz.Name, tz.Label, tz.OffsetSeconds, tz.IsDST())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersSetCmd, usersGetCmd)

	usersSetCmd.Flags().StringVar(&userTZ, "tz", "", "IANA time zone, e.g. Europe/Madrid")
	usersSetCmd.Flags().StringVar(&userTZLabel, "tz-label", "", `human readable zone, e.g. "Central European Summer Time"`)
	usersSetCmd.Flags().IntVar(&userTZOffset, "tz-offset", 0, "UTC offset in seconds (defaults to the zone's current offset)")
}
