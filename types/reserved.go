package types

// reservedShapeNames are the words of the shape notation that name a shape
// rather than an atom.
var reservedShapeNames = []string{
	"any",
	"none",
	"integer",
	"float",
	"number",
	"boolean",
	"atom",
	"tuple",
	"list",
	"maybe_improper_list",
	"nonempty_list",
	"nonempty_maybe_improper_list",
	"nil",
	"map",
	"bitstring",
	"binary",
	"fun",
}

var reservedShapeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedShapeNames))
	for _, t := range reservedShapeNames {
		m[t] = struct{}{}
	}
	return m
}()

// ReservedShapeNames returns a copy of the reserved shape names.
func ReservedShapeNames() []string {
	return append([]string(nil), reservedShapeNames...)
}

// IsReservedShapeName reports whether name denotes a shape in the notation.
// Atoms spelled like one must be quoted.
func IsReservedShapeName(name string) bool {
	_, ok := reservedShapeSet[name]
	return ok
}

// QuoteAtom quotes name unless it reads back as a plain identifier.
func QuoteAtom(name string) string {
	if isPlainAtom(name) {
		return name
	}
	return "'" + name + "'"
}

func isPlainAtom(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for _, r := range name {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}
