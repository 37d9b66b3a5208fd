package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thiremani/beamtypes/calltypes"
	"github.com/thiremani/beamtypes/parser"
)

var evalCmd = &cobra.Command{
	Use:   "eval <call>...",
	Short: "Print the return shape, argument shapes and verdict of calls",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, src := range args {
			if err := evalCall(cmd.OutOrStdout(), src); err != nil {
				return err
			}
		}
		return nil
	},
}

var (
	colorYes   = color.New(color.FgGreen, color.Bold)
	colorNo    = color.New(color.FgRed, color.Bold)
	colorMaybe = color.New(color.FgYellow)
)

func paintVerdict(v calltypes.Verdict) string {
	switch v {
	case calltypes.Yes:
		return colorYes.Sprint(v)
	case calltypes.No:
		return colorNo.Sprint(v)
	}
	return colorMaybe.Sprint(v)
}

func evalCall(w io.Writer, src string) error {
	call, err := parser.ParseCall(src)
	if err != nil {
		return err
	}
	r := calltypes.Types(call.Module, call.Function, call.Arguments)
	v := calltypes.WillSucceed(call.Module, call.Function, call.Arguments)

	fmt.Fprintln(w, call)
	fmt.Fprintf(w, "  return:  %s\n", r.Return)
	for i, a := range r.Args {
		fmt.Fprintf(w, "  arg %d:   %s\n", i+1, a)
	}
	fmt.Fprintf(w, "  safe:    %t\n", r.Safe)
	fmt.Fprintf(w, "  verdict: %s\n", paintVerdict(v))
	return nil
}
