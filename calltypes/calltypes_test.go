package calltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/parser"
	"github.com/thiremani/beamtypes/types"
)

func shapes(srcs ...string) []types.Shape {
	out := make([]types.Shape, len(srcs))
	for i, src := range srcs {
		out[i] = parser.MustParseShape(src)
	}
	return out
}

func strs(ss []types.Shape) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.String()
	}
	return out
}

type typesCase struct {
	name     string
	call     string
	wantRet  string
	wantArgs []string // nil skips the check
	safe     bool
}

func runTypes(t *testing.T, tests []typesCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := parser.ParseCall(tt.call)
			require.NoError(t, err)
			r := Types(call.Module, call.Function, call.Arguments)
			assert.Equal(t, tt.wantRet, r.Return.String(), "return of %s", tt.call)
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, strs(r.Args), "arguments of %s", tt.call)
			}
			assert.Equal(t, tt.safe, r.Safe, "safety of %s", tt.call)
		})
	}
}

func TestErlangSafeTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"map_size", "erlang:map_size(map)", "integer", []string{"map"}, true},
		{"tuple_size exact", "erlang:tuple_size({_, _})", "integer(2)", []string{"tuple"}, true},
		{"tuple_size inexact", "erlang:tuple_size({_, ...})", "integer", nil, true},
		{"tuple_size union", "erlang:tuple_size({_, _} | atom)", "integer(2)", []string{"tuple"}, true},
		{"byte_size", "erlang:byte_size(binary)", "integer", []string{"bitstring"}, true},
		{"hd", "erlang:hd(nonempty_list(atom))", "atom", []string{"nonempty_maybe_improper_list"}, true},
		{"tl proper", "erlang:tl(nonempty_list(atom))", "list(atom)", nil, true},
		{"tl improper", "erlang:tl(nonempty_maybe_improper_list(atom))", "any", nil, true},
		{"not folds", "erlang:'not'('true')", "atom(false)", []string{"boolean"}, true},
		{"not", "erlang:'not'(any)", "boolean", []string{"boolean"}, true},
		{"length of nil", "erlang:length([])", "integer(0)", []string{"list"}, true},
		{"length", "erlang:length(list(atom))", "integer", []string{"list"}, true},
	})
}

func TestErlangTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"and folds", "erlang:'and'('true', 'false')", "atom(false)", []string{"boolean", "boolean"}, false},
		{"and", "erlang:'and'(boolean, any)", "boolean", []string{"boolean", "boolean"}, false},
		{"xor folds", "erlang:'xor'('true', 'false')", "atom(true)", nil, false},
		{"band", "erlang:band(integer(5..7), integer(6))", "integer(4..6)", []string{"integer", "integer"}, false},
		{"bor", "erlang:bor(integer, integer)", "integer", []string{"integer", "integer"}, false},
		{"bxor", "erlang:bxor(any, integer)", "integer", []string{"integer", "integer"}, false},
		{"bsl", "erlang:bsl(integer(1), integer(4))", "integer", []string{"integer", "integer"}, false},
		{"bsr", "erlang:bsr(any, any)", "integer", []string{"integer", "integer"}, false},
		{"bnot", "erlang:bnot(any)", "integer", []string{"integer"}, false},
		{"float", "erlang:float(any)", "float", []string{"number"}, false},
		{"round", "erlang:round(number)", "integer", []string{"number"}, false},
		{"trunc", "erlang:trunc(float)", "integer", []string{"number"}, false},
		{"ceil", "erlang:ceil(any)", "integer", []string{"number"}, false},
		{"floor", "erlang:floor(integer)", "integer", []string{"number"}, false},
		{"divide", "erlang:'/'(integer, integer)", "float", []string{"number", "number"}, false},
		{"div", "erlang:'div'(any, any)", "integer", []string{"integer", "integer"}, false},
		{"abs float", "erlang:abs(float)", "float", []string{"number"}, false},
		{"abs integer", "erlang:abs(integer(-3..3))", "integer", []string{"number"}, false},
		{"iolist_to_binary", "erlang:iolist_to_binary(any)", "binary", []string{"maybe_improper_list | binary"}, false},
		{"list_to_binary", "erlang:list_to_binary(any)", "binary", []string{"maybe_improper_list"}, false},
		{"list_to_bitstring", "erlang:list_to_bitstring(any)", "bitstring", []string{"list"}, false},
		{"binary_part/2", "erlang:binary_part(any, any)", "binary", []string{"binary", "{integer, integer}"}, false},
		{"binary_part/3", "erlang:binary_part(any, any, any)", "binary", []string{"binary", "integer", "integer"}, false},
		{"is_map_key", "erlang:is_map_key(any, any)", "boolean", []string{"any", "map"}, false},
		{"map_get", "erlang:map_get(any, any)", "any", []string{"any", "map"}, false},
		{"node/0", "erlang:node()", "atom", []string{}, false},
		{"node/1", "erlang:node(any)", "atom", []string{"any"}, false},
		{"size", "erlang:size(any)", "integer", []string{"tuple | bitstring"}, false},
		{"make_fun exact", "erlang:make_fun(atom, atom, integer(2))", "fun(2)", []string{"atom", "atom", "integer"}, false},
		{"make_fun", "erlang:make_fun(atom, atom, integer)", "fun", nil, false},
	})
}

func TestListOperatorTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"append nil", "erlang:'++'([], atom)", "atom", []string{"list", "any"}, false},
		{"append cons", "erlang:'++'(nonempty_list(integer), list(atom))", "nonempty_list(atom | integer)", nil, false},
		{"append to nil", "erlang:'++'(list(integer), [])", "list(integer)", nil, false},
		{"append improper", "erlang:'++'(nonempty_list(integer), atom)", "nonempty_maybe_improper_list(integer)", nil, false},
		{"append non-list", "erlang:'++'(atom, any)", "none", nil, false},
		{"subtract", "erlang:'--'(nonempty_list(atom), list)", "list(atom)", []string{"list", "list"}, false},
		{"subtract from nil", "erlang:'--'([], list)", "[]", nil, false},
		{"lists:append/2", "lists:append(nonempty_list(integer), [])", "nonempty_list(integer)", []string{"list", "any"}, false},
		{"lists:subtract", "lists:subtract([], any)", "[]", []string{"list", "list"}, false},
	})
}

func TestTupleTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"element known", "erlang:element(integer(2), {atom, float})", "float", []string{"integer", "{_, _, ...}"}, false},
		{"element out of range", "erlang:element(integer(3), {atom, float})", "any", nil, false},
		{"element below one", "erlang:element(integer(0), tuple)", "none", nil, false},
		{"element unknown index", "erlang:element(integer, {atom})", "any", []string{"integer", "tuple"}, false},
		{"setelement exact", "erlang:setelement(integer(2), {atom, atom, atom}, float)", "{atom, float, atom}", []string{"integer", "tuple", "any"}, false},
		{"setelement past exact size", "erlang:setelement(integer(5), {atom, atom, atom}, float)", "none", nil, false},
		{"setelement grows inexact", "erlang:setelement(integer(2), {atom, ...}, float)", "{atom, float, ...}", nil, false},
		{"setelement range", "erlang:setelement(integer(1..3), {atom, atom, atom}, float)", "{_, _, _}", nil, false},
		{"setelement range inexact", "erlang:setelement(integer(2..4), {atom, ...}, float)", "{atom, _, ...}", nil, false},
		{"setelement unknown index", "erlang:setelement(integer, {atom, atom}, float)", "{_, _}", nil, false},
		{"setelement unknown tuple", "erlang:setelement(integer(3..5), any, any)", "{_, _, _, ...}", nil, false},
		{"setelement nothing known", "erlang:setelement(any, any, any)", "tuple", nil, false},
	})
}

func TestErlangFallback(t *testing.T) {
	runTypes(t, []typesCase{
		{"exit", "erlang:exit(atom)", "none", []string{"atom"}, false},
		{"error/2", "erlang:error(any, list)", "none", []string{"any", "list"}, false},
		{"type test", "erlang:is_integer(any)", "boolean", []string{"any"}, false},
		{"comparison", "erlang:'<'(any, any)", "boolean", []string{"any", "any"}, false},
		{"plus integers", "erlang:'+'(integer, integer(1))", "integer", []string{"number", "number"}, false},
		{"plus mixed", "erlang:'+'(integer, float)", "float", nil, false},
		{"plus unknown", "erlang:'+'(any, integer)", "number", nil, false},
		{"plus non-number", "erlang:'*'(atom, integer)", "none", nil, false},
		{"negate", "erlang:'-'(integer(3))", "integer", []string{"number"}, false},
		{"unknown function", "erlang:spawn(any, any)", "any", []string{"any", "any"}, false},
		{"unknown arity", "erlang:hd(any, any)", "any", []string{"any", "any"}, false},
	})
}

func TestMathTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"pi", "math:pi()", "float", []string{}, false},
		{"sqrt", "math:sqrt(any)", "float", []string{"number"}, false},
		{"floor", "math:floor(integer)", "float", []string{"number"}, false},
		{"pow", "math:pow(integer, float)", "float", []string{"number", "number"}, false},
		{"unknown", "math:sqrt(any, any)", "any", []string{"any", "any"}, false},
	})
}

func TestListsTypes(t *testing.T) {
	runTypes(t, []typesCase{
		{"append/1", "lists:append(any)", "any", []string{"list"}, false},
		{"all", "lists:all(any, any)", "boolean", []string{"fun(1)", "maybe_improper_list"}, false},
		{"any", "lists:any(any, list(atom))", "boolean", []string{"fun(1)", "maybe_improper_list"}, false},
		{"member", "lists:member(any, any)", "boolean", []string{"any", "maybe_improper_list"}, false},
		{"keymember", "lists:keymember(any, any, any)", "boolean", []string{"any", "integer", "maybe_improper_list"}, false},
		{"prefix", "lists:prefix(any, any)", "boolean", []string{"maybe_improper_list", "maybe_improper_list"}, false},
		{"suffix", "lists:suffix(list, nonempty_maybe_improper_list)", "boolean", []string{"maybe_improper_list", "maybe_improper_list"}, false},
		{"droplast", "lists:droplast(nonempty_list(atom))", "list(atom)", []string{"nonempty_list"}, false},
		{"dropwhile cons", "lists:dropwhile(any, nonempty_list(atom))", "list(atom)", []string{"fun(1)", "maybe_improper_list"}, false},
		{"dropwhile nil", "lists:dropwhile(any, [])", "[]", nil, false},
		{"dropwhile unknown", "lists:dropwhile(any, any)", "maybe_improper_list", nil, false},
		{"filter", "lists:filter(any, nonempty_list(atom))", "list(atom)", []string{"fun(1)", "list"}, false},
		{"flatten", "lists:flatten(any)", "list", []string{"list"}, false},
		{"flatten/2 improper tail", "lists:flatten([], nonempty_maybe_improper_list(atom))", "nonempty_maybe_improper_list", []string{"list", "maybe_improper_list"}, false},
		{"flatten/2 proper tail", "lists:flatten(any, nonempty_list(atom))", "nonempty_list", []string{"list", "maybe_improper_list"}, false},
		{"flatten/2 list tail", "lists:flatten(any, list(atom))", "list", nil, false},
		{"flatten/2 nil tail", "lists:flatten(any, [])", "list", nil, false},
		{"flatten/2 unknown tail", "lists:flatten(any, any)", "maybe_improper_list", nil, false},
		{"flatten/2 non-list tail", "lists:flatten(any, atom)", "none", nil, false},
		{"map cons", "lists:map(any, nonempty_list(atom))", "nonempty_list", []string{"fun(1)", "list"}, false},
		{"map nil", "lists:map(any, [])", "[]", nil, false},
		{"map list", "lists:map(any, list(atom))", "list", nil, false},
		{"reverse", "lists:reverse(nonempty_list(atom))", "nonempty_list(atom)", []string{"list"}, false},
		{"reverse improper", "lists:reverse(nonempty_maybe_improper_list(atom))", "nonempty_list(atom)", nil, false},
		{"sort unknown", "lists:sort(any)", "list", nil, false},
		{"usort", "lists:usort(list(atom))", "list(atom)", []string{"list"}, false},
		{"takewhile", "lists:takewhile(any, nonempty_list(atom))", "list(atom)", []string{"fun(1)", "maybe_improper_list"}, false},
		{"last", "lists:last(nonempty_list(atom))", "atom", []string{"nonempty_list"}, false},
		{"nth", "lists:nth(integer(2), list(float))", "float", []string{"integer", "nonempty_maybe_improper_list"}, false},
		{"nth improper", "lists:nth(integer(1), nonempty_maybe_improper_list(atom))", "atom", []string{"integer", "nonempty_maybe_improper_list"}, false},
		{"duplicate some", "lists:duplicate(integer(3), atom)", "nonempty_list(atom)", []string{"integer", "any"}, false},
		{"duplicate none", "lists:duplicate(integer(0), atom)", "[]", nil, false},
		{"duplicate unknown", "lists:duplicate(integer, atom)", "list(atom)", nil, false},
		{"seq", "lists:seq(any, any)", "list(integer)", []string{"integer", "integer"}, false},
		{"seq/3", "lists:seq(any, any, any)", "list(integer)", []string{"integer", "integer", "integer"}, false},
		{"foldl", "lists:foldl(any, any, any)", "any", []string{"fun(2)", "any", "list"}, false},
		{"foldr", "lists:foldr(any, any, list(atom))", "any", []string{"fun(2)", "any", "list"}, false},
		{"foreach", "lists:foreach(any, any)", "atom(ok)", []string{"fun(1)", "list"}, false},
		{"keyfind", "lists:keyfind(atom(k), integer(2), any)", "atom(false) | {_, atom(k), ...}", []string{"any", "integer", "maybe_improper_list"}, false},
		{"keyfind unknown", "lists:keyfind(any, integer, any)", "atom(false) | tuple", nil, false},
		{"mapfoldl", "lists:mapfoldl(any, any, nonempty_list(atom))", "{nonempty_list, _}", []string{"fun(2)", "any", "list"}, false},
		{"mapfoldr nil", "lists:mapfoldr(any, any, [])", "{[], _}", []string{"fun(2)", "any", "list"}, false},
		{"partition", "lists:partition(any, nonempty_list(atom))", "{list(atom), list(atom)}", []string{"fun(1)", "list"}, false},
		{"splitwith", "lists:splitwith(any, nonempty_list(atom))", "{list(atom), list(atom)}", []string{"fun(1)", "maybe_improper_list"}, false},
		{"splitwith improper", "lists:splitwith(any, maybe_improper_list(atom))", "{list(atom), maybe_improper_list(atom)}", nil, false},
		{"unknown", "lists:nosuch(any)", "any", []string{"any"}, false},
	})
}

func TestOtherModules(t *testing.T) {
	runTypes(t, []typesCase{
		{"unknown module", "foo:bar(integer, atom)", "any", []string{"any", "any"}, false},
		{"no arguments", "foo:bar()", "any", []string{}, false},
	})
}

func TestAnalyzerRegistry(t *testing.T) {
	a := New(bifs.NewTable(nil, nil))
	r := a.Types("erlang", "exit", shapes("any"))
	assert.Equal(t, "any", r.Return.String())
	assert.Equal(t, Maybe, a.WillSucceed("erlang", "exit", shapes("any")))
	assert.Equal(t, No, WillSucceed("erlang", "exit", shapes("any")))
}
