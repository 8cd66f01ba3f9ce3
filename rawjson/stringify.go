package rawjson

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"
)

var (
	// ErrCycle is returned when a container appears among its own
	// active ancestors.
	ErrCycle = errors.New("rawjson: converting circular structure")

	// ErrInvalidResponse is returned when a replacer answers with the
	// zero Response or an unknown kind.
	ErrInvalidResponse = errors.New("rawjson: replacer returned invalid response")

	// ErrBigInt is returned for a *big.Int with no JSONAs override.
	ErrBigInt = errors.New("rawjson: do not know how to serialize *big.Int")

	// ErrUnsupportedType is returned for values outside the model
	// (structs, complex numbers, non-string-keyed maps, ...).
	ErrUnsupportedType = errors.New("rawjson: unsupported type")
)

// Serializer owns the traversal stack used for cycle detection. A
// replacer that captures its Serializer may call Stringify on it
// re-entrantly; the nested walk shares the ancestor stack, so cycles
// spanning both invocations are detected, and the nested call's
// pushes are fully unwound before it returns. Not safe for concurrent
// use.
type Serializer struct {
	stack []any
}

// New creates a Serializer with an empty traversal stack.
func New() *Serializer {
	return &Serializer{}
}

// Stringify serializes value as JSON text, consulting replacer for
// every property. A nil replacer gives plain JSON.stringify
// behavior. indent accepts an integer >= 1 (space-run width, clamped
// to 10), a string (literal indent unit, clamped to 10 bytes) or a
// pointer to either; anything else disables indentation.
//
// The empty string result with a nil error means the value has no
// representable output (for example a bare func, Undefined, or a
// root-level Exclude); serialized JSON is never empty.
//
// Plain map[string]V mappings emit in sorted key order. Use Object
// when JavaScript enumeration order (array-index keys first, then
// insertion order) matters.
func (s *Serializer) Stringify(value any, replacer Replacer, indent any) (string, error) {
	return s.run(value, replacer, nil, indent)
}

// StringifyFiltered serializes value with an inclusion-list filter:
// only mapping keys named in allow are emitted. Sequences are not
// filtered. String entries name keys directly; integer and float
// entries select their canonical text form, matching the
// JSON.stringify array-replacer contract.
func (s *Serializer) StringifyFiltered(value any, allow []any, indent any) (string, error) {
	return s.run(value, nil, allowSet(allow), indent)
}

func (s *Serializer) run(value any, replacer Replacer, allow map[string]struct{}, indent any) (string, error) {
	r := &walk{s: s, replacer: replacer, allow: allow, gap: makeGap(indent)}
	holder := NewObject().Set("", value)
	text, ok, err := r.emitProperty(holder, "", "")
	if err != nil || !ok {
		return "", err
	}
	return text, nil
}

// Stringify serializes value on a fresh Serializer. See
// Serializer.Stringify.
func Stringify(value any, replacer Replacer, indent any) (string, error) {
	return New().Stringify(value, replacer, indent)
}

// StringifyFiltered serializes value on a fresh Serializer with an
// inclusion-list filter. See Serializer.StringifyFiltered.
func StringifyFiltered(value any, allow []any, indent any) (string, error) {
	return New().StringifyFiltered(value, allow, indent)
}

// allowSet normalizes an inclusion list to a key set.
func allowSet(allow []any) map[string]struct{} {
	set := make(map[string]struct{}, len(allow))
	for _, entry := range allow {
		entry, err := unwrap(entry)
		if err != nil || entry == nil {
			continue
		}
		rv := reflect.ValueOf(entry)
		switch rv.Kind() {
		case reflect.String:
			set[rv.String()] = struct{}{}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			set[formatInt(rv.Int())] = struct{}{}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			set[formatUint(rv.Uint())] = struct{}{}
		case reflect.Float32:
			set[formatFloat(rv.Float(), 32)] = struct{}{}
		case reflect.Float64:
			set[formatFloat(rv.Float(), 64)] = struct{}{}
		}
	}
	return set
}

// makeGap derives the per-level indentation unit from the indent
// argument: numeric >= 1 yields min(floor(n), 10) spaces, a string
// yields its first 10 bytes (backed off to a rune boundary), anything
// else yields no gap.
func makeGap(indent any) string {
	indent, err := unwrap(indent)
	if err != nil || indent == nil {
		return ""
	}
	rv := reflect.ValueOf(indent)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		if len(s) > 10 {
			cut := 10
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			s = s[:cut]
		}
		return s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spaceGap(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 10 {
			u = 10
		}
		return spaceGap(int64(u))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || f < 1 {
			return ""
		}
		if f > 10 {
			f = 10
		}
		return spaceGap(int64(math.Floor(f)))
	}
	return ""
}

func spaceGap(n int64) string {
	if n < 1 {
		return ""
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat(" ", int(n))
}
