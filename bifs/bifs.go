package bifs

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

const (
	Erlang = "erlang"
	Lists  = "lists"
	Math   = "math"
)

// MFA identifies a function by module, name and arity.
type MFA struct {
	Module   string
	Function string
	Arity    int
}

func (m MFA) String() string {
	return fmt.Sprintf("%s:%s/%d", m.Module, m.Function, m.Arity)
}

// Registry answers static questions about built-in functions.
type Registry interface {
	// IsSafe reports whether the call always succeeds whatever its
	// arguments, provided the arity matches.
	IsSafe(mfa MFA) bool
	// IsExit reports whether the call never returns normally.
	IsExit(mfa MFA) bool
	// IsArithOp reports whether name/arity is an erlang arithmetic operator.
	IsArithOp(name string, arity int) bool
	// IsTypeTest reports whether name/arity is an erlang type test.
	IsTypeTest(name string, arity int) bool
	// IsCompOp reports whether name/arity is an erlang comparison operator.
	IsCompOp(name string, arity int) bool
}

// Table is a Registry backed by fixed MFA sets.
type Table struct {
	safe      *set.Set[MFA]
	exit      *set.Set[MFA]
	arith     *set.Set[MFA]
	typeTests *set.Set[MFA]
	compOps   *set.Set[MFA]
}

// NewTable builds a registry from explicit safe and exit sets. Operator
// classification always follows the erlang module.
func NewTable(safe, exit []MFA) *Table {
	return &Table{
		safe:      set.From(safe),
		exit:      set.From(exit),
		arith:     set.From(erlangAll(arithOps)),
		typeTests: set.From(erlangAll(typeTests)),
		compOps:   set.From(erlangAll(compOps)),
	}
}

var defaultTable = NewTable(erlangAll(safeBIFs), erlangAll(exitBIFs))

// Default returns the registry of BEAM built-ins.
func Default() *Table {
	return defaultTable
}

func (t *Table) IsSafe(mfa MFA) bool { return t.safe.Contains(mfa) }

func (t *Table) IsExit(mfa MFA) bool { return t.exit.Contains(mfa) }

func (t *Table) IsArithOp(name string, arity int) bool {
	return t.arith.Contains(MFA{Erlang, name, arity})
}

func (t *Table) IsTypeTest(name string, arity int) bool {
	return t.typeTests.Contains(MFA{Erlang, name, arity})
}

func (t *Table) IsCompOp(name string, arity int) bool {
	return t.compOps.Contains(MFA{Erlang, name, arity})
}

type nameArity struct {
	name  string
	arity int
}

func erlangAll(nas []nameArity) []MFA {
	out := make([]MFA, len(nas))
	for i, na := range nas {
		out[i] = MFA{Erlang, na.name, na.arity}
	}
	return out
}

// safeBIFs cannot fail for any argument values.
var safeBIFs = []nameArity{
	{"/=", 2}, {"<", 2}, {"=/=", 2}, {"=:=", 2}, {"=<", 2}, {"==", 2}, {">", 2}, {">=", 2},
	{"date", 0}, {"get", 1}, {"get_cookie", 0}, {"group_leader", 0}, {"is_alive", 0},
	{"is_atom", 1}, {"is_boolean", 1}, {"is_binary", 1}, {"is_bitstring", 1},
	{"is_float", 1}, {"is_function", 1}, {"is_integer", 1}, {"is_list", 1},
	{"is_map", 1}, {"is_number", 1}, {"is_pid", 1}, {"is_port", 1},
	{"is_reference", 1}, {"is_tuple", 1},
	{"make_ref", 0}, {"node", 0}, {"nodes", 0}, {"ports", 0}, {"pre_loaded", 0},
	{"processes", 0}, {"registered", 0}, {"self", 0}, {"term_to_binary", 1}, {"time", 0},
}

// exitBIFs never return.
var exitBIFs = []nameArity{
	{"exit", 1}, {"throw", 1},
	{"error", 1}, {"error", 2}, {"error", 3},
	{"nif_error", 1}, {"nif_error", 2},
}

var arithOps = []nameArity{
	{"+", 1}, {"-", 1}, {"bnot", 1},
	{"+", 2}, {"-", 2}, {"*", 2}, {"/", 2}, {"div", 2}, {"rem", 2},
	{"band", 2}, {"bor", 2}, {"bxor", 2}, {"bsl", 2}, {"bsr", 2},
}

var typeTests = []nameArity{
	{"is_atom", 1}, {"is_binary", 1}, {"is_bitstring", 1}, {"is_boolean", 1},
	{"is_float", 1}, {"is_function", 1}, {"is_function", 2}, {"is_integer", 1},
	{"is_list", 1}, {"is_map", 1}, {"is_number", 1}, {"is_pid", 1}, {"is_port", 1},
	{"is_record", 2}, {"is_record", 3}, {"is_reference", 1}, {"is_tuple", 1},
}

var compOps = []nameArity{
	{"==", 2}, {"/=", 2}, {"=<", 2}, {"<", 2}, {">=", 2}, {">", 2}, {"=:=", 2}, {"=/=", 2},
}
