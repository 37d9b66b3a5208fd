package calltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/beamtypes/parser"
	"github.com/thiremani/beamtypes/types"
)

func TestWillSucceed(t *testing.T) {
	tests := []struct {
		call string
		want Verdict
	}{
		{"erlang:hd(nonempty_list)", Yes},
		{"erlang:hd(list)", Maybe},
		{"erlang:hd([])", No},
		{"erlang:tl(atom)", No},
		{"erlang:length(list(atom))", Yes},
		{"erlang:length(maybe_improper_list)", Maybe},
		{"erlang:length(atom)", No},
		{"erlang:tuple_size({_, _})", Yes},
		{"erlang:map_size(tuple)", No},
		{"erlang:bit_size(binary)", Yes},
		{"erlang:'++'(list, any)", Yes},
		{"erlang:'++'(maybe_improper_list, any)", Maybe},
		{"erlang:'++'(atom, list)", No},
		{"erlang:'--'(list, [])", Yes},
		{"erlang:'--'(list, maybe_improper_list)", Maybe},
		{"erlang:'--'(list, atom)", No},
		{"erlang:'and'(boolean, boolean)", Yes},
		{"erlang:'and'(boolean, atom)", Maybe},
		{"erlang:'or'(integer, boolean)", No},
		{"erlang:'not'('true')", Yes},
		{"erlang:is_map_key(any, map)", Yes},
		{"erlang:is_map_key(any, list)", No},
		{"erlang:size({_, _})", Yes},
		{"erlang:size(binary)", Yes},
		{"erlang:size(list)", No},
		{"erlang:size(any)", Maybe},
		{"erlang:setelement(integer(1..3), {atom, atom, atom}, any)", Yes},
		{"erlang:setelement(integer(5), {atom, atom, atom}, any)", No},
		{"erlang:setelement(integer(2..5), {atom, atom, atom}, any)", Maybe},
		{"erlang:setelement(integer(0), {atom}, any)", No},
		{"erlang:setelement(integer(5), {atom, ...}, any)", Maybe},
		{"erlang:setelement(integer(1), {atom, ...}, any)", Yes},
		{"erlang:setelement(integer, tuple, any)", Maybe},
		{"erlang:setelement(integer(2), atom, any)", No},
		{"erlang:self()", Yes},
		{"erlang:is_atom(any)", Yes},
		{"erlang:exit(any)", No},
		{"erlang:error(any, any)", No},
		{"erlang:element(integer(3), {atom, float})", No},
		{"erlang:element(integer(1), {atom, float})", Maybe},
		{"erlang:element(integer(0), tuple)", No},
		{"erlang:'+'(atom, integer)", No},
		{"erlang:'+'(integer, integer)", Maybe},
		{"math:sqrt(atom)", No},
		{"math:sqrt(integer)", Maybe},
		{"lists:map(fun(2), list)", No},
		{"lists:reverse(atom)", No},
		{"lists:reverse(list)", Maybe},
		{"lists:nth(integer(1), nonempty_maybe_improper_list(atom))", Maybe},
		{"lists:nth(integer(1), [])", No},
		{"lists:flatten([], nonempty_maybe_improper_list(atom))", Maybe},
		{"lists:flatten(list, atom)", No},
		{"foo:bar(any)", Maybe},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			call, err := parser.ParseCall(tt.call)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WillSucceed(call.Module, call.Function, call.Arguments))
		})
	}
}

func TestNilShortCircuit(t *testing.T) {
	tests := []struct {
		call string
		want Verdict
	}{
		{"lists:zip([], nonempty_list)", No},
		{"lists:zip([], list)", Maybe},
		{"lists:zip3(list, [], nonempty_list(atom))", No},
		{"lists:zipwith(fun(2), nonempty_list, [])", No},
		{"lists:zip(nonempty_list, list)", Maybe},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			call, err := parser.ParseCall(tt.call)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WillSucceed(call.Module, call.Function, call.Arguments))
		})
	}
}

// verdictCalls exercises every special case and a sample of table entries.
var verdictCalls = []string{
	"erlang:hd(nonempty_list(atom))",
	"erlang:hd(list)",
	"erlang:hd(atom)",
	"erlang:tl(nonempty_maybe_improper_list)",
	"erlang:length([])",
	"erlang:length(integer)",
	"erlang:map_size(map)",
	"erlang:map_size(any)",
	"erlang:tuple_size({_, ...})",
	"erlang:byte_size(integer)",
	"erlang:'not'(any)",
	"erlang:'not'(integer)",
	"erlang:size(tuple | binary)",
	"erlang:'++'([], atom)",
	"erlang:'++'(nonempty_list, any)",
	"erlang:'--'(list, list)",
	"erlang:'and'('true', 'true')",
	"erlang:is_map_key(any, map)",
	"erlang:setelement(integer(1..2), {atom, atom}, float)",
	"erlang:setelement(integer(2), {atom, ...}, float)",
	"erlang:setelement(integer(3), {atom, atom}, float)",
	"erlang:element(integer(2), {atom, float})",
	"erlang:band(integer(0..9), integer(3))",
	"erlang:'+'(integer, float)",
	"erlang:exit(any)",
	"erlang:self()",
	"math:pi()",
	"lists:zip(nonempty_list(integer), list(atom))",
	"lists:zip([], any)",
	"lists:unzip(nonempty_list({integer, atom}))",
	"lists:keyfind(atom, integer(1), list)",
}

func TestVerdictConsistency(t *testing.T) {
	for _, src := range verdictCalls {
		t.Run(src, func(t *testing.T) {
			call, err := parser.ParseCall(src)
			require.NoError(t, err)
			r := Types(call.Module, call.Function, call.Arguments)
			v := WillSucceed(call.Module, call.Function, call.Arguments)

			if v == Yes {
				assert.NotEqual(t, types.NoneKind, r.Return.Kind(), "succeeds but returns none")
			}
			if r.Safe && anyPair(call.Arguments, r.Args, disjoint) {
				assert.Equal(t, No, v, "safe call with an impossible argument")
			}
		})
	}
}

func TestSucceedsIfType(t *testing.T) {
	assert.Equal(t, Yes, succeedsIfType(types.Nil{}, ProperList()))
	assert.Equal(t, Maybe, succeedsIfType(types.Any{}, ProperList()))
	assert.Equal(t, No, succeedsIfType(types.Map{}, ProperList()))

	assert.Equal(t, Yes, bothSucceed(Yes, Yes))
	assert.Equal(t, No, bothSucceed(Maybe, No))
	assert.Equal(t, Maybe, bothSucceed(Yes, Maybe))
}

func TestAnyPairLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		anyPair(shapes("any"), shapes("any", "any"), disjoint)
	})
}

func TestVerdictNames(t *testing.T) {
	for _, v := range []Verdict{Yes, No, Maybe} {
		back, err := ParseVerdict(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
	_, err := ParseVerdict("perhaps")
	assert.Error(t, err)
}
