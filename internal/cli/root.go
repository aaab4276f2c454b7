// Package cli defines the calc command-line front-end to the calculator
// engine.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calculadora/internal/calculator"
	"calculadora/internal/display"
)

// Execute builds the root command, runs it with args and writes results to
// out.
func Execute(args []string, out io.Writer) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd.Execute()
}

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "calc",
		Short:         "calc drives the keypad calculator from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !opts.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every key to stderr")

	cmd.AddCommand(newPressCommand(opts))

	return cmd
}

func newPressCommand(opts *rootOptions) *cobra.Command {
	var steps bool

	cmd := &cobra.Command{
		Use:   "press KEY...",
		Short: "Press keys on a fresh calculator and print the display",
		Long: "Press keys on a fresh calculator and print the formatted display.\n" +
			"Keys are keypad labels: 0-9 , + - × ÷ (or * /) = % AC +/- DEL.",
		Example: "  calc press 7 ÷ 2 =\n  calc press --steps 2 + 3 + 4 =",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := calculator.ParseKeys(args)
			if err != nil {
				return err
			}

			f := display.NewFormatter(display.BrazilianPortuguese)
			out := cmd.OutOrStdout()
			state := calculator.NewState()

			for _, k := range keys {
				state = state.Press(k)
				opts.logger.Debug("key pressed",
					zap.String("key", k.Label),
					zap.String("kind", string(k.Kind)),
					zap.String("display", state.Display),
					zap.String("operator", state.Operator.String()),
				)
				if steps {
					printView(out, k.Label, calculator.Render(state, f))
				}
			}

			if !steps {
				_, err = fmt.Fprintln(out, f.Format(state.Display))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&steps, "steps", false, "Print the view after every key")

	return cmd
}

func printView(w io.Writer, key string, v calculator.View) {
	if v.Expression != "" {
		fmt.Fprintf(w, "%-4s %s | %s\n", key, v.Display, v.Expression)
		return
	}
	fmt.Fprintf(w, "%-4s %s\n", key, v.Display)
}
