package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestEvalCall(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, evalCall(&out, "erlang:setelement(integer(2), {atom, atom, atom}, float)"))

	want := `erlang:setelement(integer(2), {atom, atom, atom}, float)
  return:  {atom, float, atom}
  arg 1:   integer
  arg 2:   tuple
  arg 3:   any
  safe:    false
  verdict: yes
`
	assert.Equal(t, want, out.String())
}

func TestEvalCallParseError(t *testing.T) {
	var out bytes.Buffer
	err := evalCall(&out, "erlang:hd(")
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestCheckTestdata(t *testing.T) {
	data, err := os.ReadFile("testdata/calls.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	failed, err := runCheck(&out, data)
	require.NoError(t, err)
	assert.Zero(t, failed, out.String())
	assert.NotContains(t, out.String(), "FAIL")
}

func TestCheckMismatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"return", `cases: [{call: "erlang:hd(nonempty_list(atom))", return: integer}]`, "return: want integer, got atom"},
		{"verdict", `cases: [{call: "erlang:hd(list)", verdict: "yes"}]`, "verdict: want yes, got maybe"},
		{"arg count", `cases: [{call: "erlang:hd(list)", args: [any, any]}]`, "args: want (any, any), got (nonempty_maybe_improper_list)"},
		{"arg shape", `cases: [{call: "erlang:hd(list)", args: [nonempty_list]}]`, "args: want (nonempty_list), got (nonempty_maybe_improper_list)"},
		{"bad arg shape", `cases: [{call: "erlang:hd(list)", args: ["list("]}]`, "args: parse shape"},
		{"safe", `cases: [{call: "erlang:hd(list)", safe: false}]`, "safe: want false, got true"},
		{"bad call", `cases: [{call: "erlang:hd("}]`, "parse call"},
		{"bad shape", `cases: [{call: "erlang:hd(list)", return: "list("}]`, "return: parse shape"},
		{"bad verdict", `cases: [{call: "erlang:hd(list)", verdict: "perhaps"}]`, "unknown verdict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			failed, err := runCheck(&out, []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, 1, failed)
			assert.True(t, strings.HasPrefix(out.String(), "FAIL"), out.String())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestCheckBadYAML(t *testing.T) {
	_, err := runCheck(&bytes.Buffer{}, []byte("cases: {call: ["))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.True(t, strings.HasPrefix(out.String(), "beamtypes dev ("), out.String())
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--no-color", "eval", "erlang:hd([])"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "return:  any")
	assert.Contains(t, out.String(), "verdict: no")
}
