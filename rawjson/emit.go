package rawjson

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// walk is the per-call emission state. The traversal stack lives on
// the Serializer so that re-entrant calls share ancestors.
type walk struct {
	s        *Serializer
	replacer Replacer
	allow    map[string]struct{}
	gap      string
}

// ============================================================
// Property Emitter
// ============================================================

// emitProperty emits holder[key]. ok is false when the property has
// no representable output and must be omitted (mappings) or replaced
// by the literal null (sequences).
func (r *walk) emitProperty(holder any, key string, indent string) (text string, ok bool, err error) {
	value := resolve(holder, key)

	// Per-value customization runs before the replacer; its result is
	// what the replacer sees.
	if ja, isJA := value.(JSONArer); isJA {
		value = ja.JSONAs(key)
	}

	if r.replacer != nil {
		resp, err := r.replacer(holder, key, value)
		if err != nil {
			return "", false, err
		}
		switch resp.kind {
		case responseExclude:
			return "", false, nil
		case responseLiteral:
			return resp.text, true, nil
		case responseInclude, responseUseDefault:
		default:
			return "", false, fmt.Errorf("%w: %s", ErrInvalidResponse, resp)
		}
	}

	return r.emitValue(value, indent)
}

// emitValue performs default emission of a value.
func (r *walk) emitValue(v any, indent string) (string, bool, error) {
	v, err := unwrap(v)
	if err != nil {
		return "", false, err
	}

	switch val := v.(type) {
	case nil:
		return "null", true, nil
	case undefined:
		return "", false, nil
	case bool:
		if val {
			return "true", true, nil
		}
		return "false", true, nil
	case string:
		return quoteString(val), true, nil
	case json.Number:
		if !isNumberLiteral(string(val)) {
			return "", false, fmt.Errorf("%w: json.Number %q is not a number literal", ErrUnsupportedType, string(val))
		}
		return string(val), true, nil
	case int:
		return formatInt(int64(val)), true, nil
	case int64:
		return formatInt(val), true, nil
	case float64:
		return formatFloat(val, 64), true, nil
	case float32:
		return formatFloat(float64(val), 32), true, nil
	case *big.Int:
		return "", false, ErrBigInt
	case *Object:
		text, err := r.emitContainer(val, indent)
		return text, err == nil, err
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return "true", true, nil
		}
		return "false", true, nil
	case reflect.String:
		return quoteString(rv.String()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatInt(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return formatUint(rv.Uint()), true, nil
	case reflect.Float32:
		return formatFloat(rv.Float(), 32), true, nil
	case reflect.Float64:
		return formatFloat(rv.Float(), 64), true, nil
	case reflect.Func, reflect.Chan:
		return "", false, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", false, fmt.Errorf("%w: %T (map keys must be strings)", ErrUnsupportedType, v)
		}
		text, err := r.emitContainer(v, indent)
		return text, err == nil, err
	case reflect.Slice, reflect.Array:
		text, err := r.emitContainer(v, indent)
		return text, err == nil, err
	}
	return "", false, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// emitContainer guards a container descent: cycle check, push, emit,
// pop. The pop runs on every exit path so failures unwinding through
// this frame cannot leave a stale ancestor behind.
func (r *walk) emitContainer(v any, indent string) (string, error) {
	for _, anc := range r.s.stack {
		if sameContainer(anc, v) {
			return "", ErrCycle
		}
	}
	r.s.stack = append(r.s.stack, v)
	defer func() {
		r.s.stack = r.s.stack[:len(r.s.stack)-1]
	}()

	if isSequence(v) {
		return r.emitSequence(v, indent)
	}
	return r.emitMapping(v, indent)
}

// ============================================================
// Sequence Emitter
// ============================================================

func (r *walk) emitSequence(seq any, indent string) (string, error) {
	rv := reflect.ValueOf(seq)
	n := rv.Len()
	if n == 0 {
		return "[]", nil
	}

	newIndent := indent + r.gap
	sep := ","
	if r.gap != "" {
		sep = ",\n" + newIndent
	}

	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, ok, err := r.emitProperty(seq, strconv.Itoa(i), newIndent)
		if err != nil {
			return "", err
		}
		if !ok {
			// Positions are never omitted.
			text = "null"
		}
		parts = append(parts, text)
	}

	joined := strings.Join(parts, sep)
	if r.gap != "" {
		return "[\n" + newIndent + joined + "\n" + indent + "]", nil
	}
	return "[" + joined + "]", nil
}

// ============================================================
// Mapping Emitter
// ============================================================

func (r *walk) emitMapping(m any, indent string) (string, error) {
	newIndent := indent + r.gap
	sep := ","
	colon := ":"
	if r.gap != "" {
		sep = ",\n" + newIndent
		colon = ": "
	}

	var parts []string
	for _, key := range mappingKeys(m) {
		if r.allow != nil {
			if _, ok := r.allow[key]; !ok {
				continue
			}
		}
		text, ok, err := r.emitProperty(m, key, newIndent)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		parts = append(parts, quoteString(key)+colon+text)
	}

	if len(parts) == 0 {
		return "{}", nil
	}
	joined := strings.Join(parts, sep)
	if r.gap != "" {
		return "{\n" + newIndent + joined + "\n" + indent + "}", nil
	}
	return "{" + joined + "}", nil
}
