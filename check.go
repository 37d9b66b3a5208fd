package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thiremani/beamtypes/calltypes"
	"github.com/thiremani/beamtypes/parser"
	"github.com/thiremani/beamtypes/types"
	"gopkg.in/yaml.v3"
)

// checkFile is the layout of a case file:
//
//	cases:
//	  - call: "erlang:hd(nonempty_list(atom))"
//	    return: atom
//	    verdict: yes
//
// Fields other than call are optional; only the ones given are compared.
type checkFile struct {
	Cases []checkCase `yaml:"cases"`
}

type checkCase struct {
	Call    string   `yaml:"call"`
	Return  string   `yaml:"return,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	Safe    *bool    `yaml:"safe,omitempty"`
	Verdict string   `yaml:"verdict,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <file.yaml>...",
	Short: "Run the expectations in case files and report mismatches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			n, err := runCheck(cmd.OutOrStdout(), data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			failed += n
		}
		if failed > 0 {
			return fmt.Errorf("%d case(s) failed", failed)
		}
		return nil
	},
}

var (
	colorPass = color.New(color.FgGreen)
	colorFail = color.New(color.FgRed, color.Bold)
)

// runCheck decodes a case file, runs every case and writes one line per case
// to w. It returns the number of failed cases.
func runCheck(w io.Writer, data []byte) (int, error) {
	var f checkFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, err
	}

	failed := 0
	for _, c := range f.Cases {
		problems := c.run()
		if len(problems) == 0 {
			fmt.Fprintf(w, "%s %s\n", colorPass.Sprint("ok  "), c.Call)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s\n", colorFail.Sprint("FAIL"), c.Call)
		for _, p := range problems {
			fmt.Fprintf(w, "       %s\n", p)
		}
	}
	return failed, nil
}

// run evaluates the case and lists every expectation it misses.
func (c checkCase) run() []string {
	call, err := parser.ParseCall(c.Call)
	if err != nil {
		return []string{err.Error()}
	}
	r := calltypes.Types(call.Module, call.Function, call.Arguments)

	var problems []string
	if c.Return != "" {
		problems = append(problems, compareShape("return", c.Return, r.Return)...)
	}
	if c.Args != nil {
		problems = append(problems, compareShapes("args", c.Args, r.Args)...)
	}
	if c.Safe != nil && *c.Safe != r.Safe {
		problems = append(problems, fmt.Sprintf("safe: want %t, got %t", *c.Safe, r.Safe))
	}
	if c.Verdict != "" {
		want, err := calltypes.ParseVerdict(strings.ToLower(c.Verdict))
		if err != nil {
			problems = append(problems, err.Error())
		} else if got := calltypes.WillSucceed(call.Module, call.Function, call.Arguments); got != want {
			problems = append(problems, fmt.Sprintf("verdict: want %s, got %s", want, got))
		}
	}
	return problems
}

func compareShape(what, src string, got types.Shape) []string {
	want, err := parser.ParseShape(src)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", what, err)}
	}
	if !types.Equal(want, got) {
		return []string{fmt.Sprintf("%s: want %s, got %s", what, want, got)}
	}
	return nil
}

func compareShapes(what string, srcs []string, got []types.Shape) []string {
	want := make([]types.Shape, len(srcs))
	for i, src := range srcs {
		s, err := parser.ParseShape(src)
		if err != nil {
			return []string{fmt.Sprintf("%s: %v", what, err)}
		}
		want[i] = s
	}
	if !types.EqualShapes(want, got) {
		return []string{fmt.Sprintf("%s: want %s, got %s", what, shapeList(want), shapeList(got))}
	}
	return nil
}

func shapeList(ss []types.Shape) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
