package rawjson

import (
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

// Undefined is the absent-marker: the "no value here" primitive
// distinct from nil. Emitting it omits the property (or substitutes
// the literal null inside a sequence).
var Undefined undefined

type undefined struct{}

func (undefined) String() string { return "undefined" }

// JSONArer is the per-value "serialize as" hook. When a value
// implements it, JSONAs is called with the property key before the
// replacer runs, and its result is what the replacer sees.
type JSONArer interface {
	JSONAs(key string) any
}

// ============================================================
// Object - ordered mapping
// ============================================================

// Member is a key-value pair in an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a string-keyed mapping that preserves insertion order.
// Enumeration follows the JavaScript own-property rule: keys that are canonical
// array indexes come first in ascending numeric order, then the
// remaining keys in insertion order.
type Object struct {
	members []Member
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{}
}

// ObjectOf creates an Object from members, keeping the given order.
// Later duplicates overwrite earlier ones in place.
func ObjectOf(members ...Member) *Object {
	o := &Object{}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set sets a member, replacing in place if the key exists.
// Returns o for chaining.
func (o *Object) Set(key string, value any) *Object {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members[i].Value = value
			return o
		}
	}
	o.members = append(o.members, Member{Key: key, Value: value})
	return o
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Delete removes a member, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members = append(o.members[:i], o.members[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Members returns the members in insertion order.
func (o *Object) Members() []Member {
	return o.members
}

// Keys returns the keys in enumeration order: array-index keys
// ascending, then the rest in insertion order.
func (o *Object) Keys() []string {
	var idx, rest []string
	for _, m := range o.members {
		if _, ok := arrayIndex(m.Key); ok {
			idx = append(idx, m.Key)
		} else {
			rest = append(rest, m.Key)
		}
	}
	sort.Slice(idx, func(i, j int) bool {
		ni, _ := arrayIndex(idx[i])
		nj, _ := arrayIndex(idx[j])
		return ni < nj
	})
	return append(idx, rest...)
}

// arrayIndex reports whether key is a canonical array index: a
// decimal integer with no leading zero, below 2^32-1.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || len(key) > 10 {
		return 0, false
	}
	if key == "0" {
		return 0, true
	}
	if key[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= 1<<32-1 {
		return 0, false
	}
	return n, true
}

// ============================================================
// Value Normalization
// ============================================================

// unwrap strips boxed primitives: non-nil pointers are dereferenced
// (repeatedly), nil pointers become nil. *Object and *big.Int are
// containers in their own right and pass through. A pointer chain
// that revisits itself fails with ErrCycle.
func unwrap(v any) (any, error) {
	var seen []uintptr
	for {
		switch t := v.(type) {
		case nil:
			return nil, nil
		case *Object:
			if t == nil {
				return nil, nil
			}
			return v, nil
		case *big.Int:
			if t == nil {
				return nil, nil
			}
			return v, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer {
			return v, nil
		}
		if rv.IsNil() {
			return nil, nil
		}
		ptr := rv.Pointer()
		for _, p := range seen {
			if p == ptr {
				return nil, ErrCycle
			}
		}
		seen = append(seen, ptr)
		v = rv.Elem().Interface()
	}
}

// resolve looks up holder[key]. Missing or unreachable properties
// resolve to Undefined.
func resolve(holder any, key string) any {
	switch h := holder.(type) {
	case *Object:
		if v, ok := h.Get(key); ok {
			return v
		}
		return Undefined
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(h) {
			return Undefined
		}
		return h[i]
	case map[string]any:
		if v, ok := h[key]; ok {
			return v
		}
		return Undefined
	}
	rv := reflect.ValueOf(holder)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return Undefined
		}
		return rv.Index(i).Interface()
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if kt := rv.Type().Key(); kt != kv.Type() {
			kv = kv.Convert(kt)
		}
		mv := rv.MapIndex(kv)
		if !mv.IsValid() {
			return Undefined
		}
		return mv.Interface()
	}
	return Undefined
}

// isSequence reports whether a container is ordered/index-keyed.
func isSequence(v any) bool {
	if _, ok := v.(*Object); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// mappingKeys returns a mapping's keys in emission order. Objects use
// their enumeration order; plain Go maps have no insertion order, so
// their keys are sorted for deterministic output.
func mappingKeys(m any) []string {
	if o, ok := m.(*Object); ok {
		return o.Keys()
	}
	rv := reflect.ValueOf(m)
	keys := make([]string, 0, rv.Len())
	for _, kv := range rv.MapKeys() {
		keys = append(keys, kv.String())
	}
	sort.Strings(keys)
	return keys
}

// sameContainer reports container identity for cycle detection.
// Slices compare by data pointer and length, maps and Objects by
// pointer. Arrays are values and can never be self-referential.
func sameContainer(a, b any) bool {
	if ao, ok := a.(*Object); ok {
		bo, ok := b.(*Object)
		return ok && ao == bo
	}
	if _, ok := b.(*Object); ok {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Map:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}
