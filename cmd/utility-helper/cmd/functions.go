package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Neruzzz/utility-helper/internal/directory"
	"github.com/Neruzzz/utility-helper/internal/tools"
)

var (
	callTZ       string
	callTZLabel  string
	callTZOffset int
	callUser     string
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the available functions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := tools.NewRegistry(newService(directory.Fixed{}))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, t := range reg.AllTools() {
			fmt.Fprintf(w, "%s\t%s\n", t.Name(), t.Description())
		}
		return w.Flush()
	},
}

var callCmd = &cobra.Command{
	Use:   "call <function> <json-inputs>",
	Short: "Call one function and print its outputs",
	Long: `Call one function and print its outputs.

The user's time zone comes from --tz/--tz-label/--tz-offset when --tz or
--tz-offset is given, otherwise from the configured directory.

Examples:
  utility-helper call datediff_function '{"date1":"2024-01-15","date2":"2024-03-15","unit":"Months"}'
  utility-helper call getnextdate_function '{"day_of_week":1,"time":"9:00 AM"}' --tz Europe/Madrid
  utility-helper call math_expression_function '{"expression":"sqrt(2) * 10","round_to":3}'`,
	Args: cobra.ExactArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callTZ, "tz", "", "IANA time zone of the user, e.g. America/New_York")
	callCmd.Flags().StringVar(&callTZLabel, "tz-label", "", `time zone label, e.g. "Eastern Daylight Time"`)
	callCmd.Flags().IntVar(&callTZOffset, "tz-offset", 0, "UTC offset of the user in seconds")
	callCmd.Flags().StringVar(&callUser, "user", "cli", "user id passed to functions that take one")
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name, raw := args[0], args[1]

	inputs := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return fmt.Errorf("inputs must be a JSON object: %w", err)
	}

	var (
		dir      directory.Directory
		closeDir = func() {}
	)
	if cmd.Flags().Changed("tz") || cmd.Flags().Changed("tz-offset") {
		dir = directory.Fixed{Name: callTZ, Label: callTZLabel, OffsetSeconds: callTZOffset}
	} else {
		var err error
		if dir, closeDir, err = openDirectory(ctx); err != nil {
			return err
		}
	}
	defer closeDir()

	reg := tools.NewRegistry(newService(dir))
	if t := reg.FindByName(name); t != nil {
		if props, _ := t.ParametersSchema()["properties"].(map[string]any); props["user"] != nil && inputs["user"] == nil {
			inputs["user"] = callUser
		}
	}

	out, err := reg.Invoke(ctx, name, inputs)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, raw string) error {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		_, err = fmt.Fprintln(w, raw)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
