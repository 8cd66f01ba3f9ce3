package rawjson

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"unicode/utf8"
)

// ============================================================
// Default Emission Tests
// ============================================================

func TestStringify_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint8", uint8(255), "255"},
		{"float", 3.25, "3.25"},
		{"float32", float32(1.5), "1.5"},
		{"nan", math.NaN(), "null"},
		{"inf", math.Inf(1), "null"},
		{"neg inf", math.Inf(-1), "null"},
		{"string", "hi", `"hi"`},
		{"empty string", "", `""`},
		{"json number", json.Number("12.50"), "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value, nil, nil)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringify_JSONNumberValidated(t *testing.T) {
	// json.Number text is emitted verbatim, so malformed literals must
	// be rejected rather than passed into the output.
	valid := []json.Number{"0", "-0", "42", "-1.5", "1e3", "-1.5E+3", "2.5e-10"}
	for _, n := range valid {
		got, err := Stringify(n, nil, nil)
		if err != nil {
			t.Errorf("Stringify(%q) failed: %v", n, err)
		}
		if got != string(n) {
			t.Errorf("Expected %q verbatim, got %q", n, got)
		}
	}

	invalid := []json.Number{"", "abc", "01", "1.", ".5", "1e", "+1", "0x10", "NaN", "Infinity", "1 "}
	for _, n := range invalid {
		if _, err := Stringify(n, nil, nil); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Stringify(%q): expected ErrUnsupportedType, got %v", n, err)
		}
		if _, err := Stringify([]any{n}, nil, nil); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Stringify([%q]): expected ErrUnsupportedType, got %v", n, err)
		}
	}
}

func TestStringify_Containers(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty sequence", []any{}, "[]"},
		{"nil sequence", []any(nil), "[]"},
		{"mixed sequence", []any{1, "a", nil, true}, `[1,"a",null,true]`},
		{"typed slice", []int{1, 2, 3}, "[1,2,3]"},
		{"array", [3]int{1, 2, 3}, "[1,2,3]"},
		{"empty object", NewObject(), "{}"},
		{"object", ObjectOf(Member{"a", 1}, Member{"b", []any{2, 3}}), `{"a":1,"b":[2,3]}`},
		{"nested", []any{ObjectOf(Member{"k", "v"})}, `[{"k":"v"}]`},
		{"plain map sorted", map[string]any{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"typed map", map[string]int{"x": 1}, `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value, nil, nil)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringify_AbsentValues(t *testing.T) {
	fn := func() {}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"bare func", fn, ""},
		{"bare undefined", Undefined, ""},
		{"func in object", ObjectOf(Member{"f", fn}), "{}"},
		{"undefined in object", ObjectOf(Member{"u", Undefined}, Member{"k", 1}), `{"k":1}`},
		{"func in sequence", []any{fn}, "[null]"},
		{"undefined in sequence", []any{1, Undefined, 3}, "[1,null,3]"},
		{"channel in sequence", []any{make(chan int)}, "[null]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value, nil, nil)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringify_BoxedPrimitives(t *testing.T) {
	n := 5
	pn := &n
	s := "hi"
	var nilPtr *int

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"pointer to int", &n, "5"},
		{"pointer to pointer", &pn, "5"},
		{"pointer to string", &s, `"hi"`},
		{"nil pointer", nilPtr, "null"},
		{"boxed in sequence", []any{&n}, "[5]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value, nil, nil)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ============================================================
// Indentation Tests
// ============================================================

func TestStringify_Indent(t *testing.T) {
	value := ObjectOf(Member{"a", 1}, Member{"b", []any{2}})

	tests := []struct {
		name   string
		indent any
		want   string
	}{
		{"numeric", 2, "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}"},
		{"tab string", "\t", "{\n\t\"a\": 1,\n\t\"b\": [\n\t\t2\n\t]\n}"},
		{"fractional floors", 1.9, "{\n \"a\": 1,\n \"b\": [\n  2\n ]\n}"},
		{"zero disables", 0, `{"a":1,"b":[2]}`},
		{"negative disables", -3, `{"a":1,"b":[2]}`},
		{"below one disables", 0.5, `{"a":1,"b":[2]}`},
		{"bool disables", true, `{"a":1,"b":[2]}`},
		{"nil disables", nil, `{"a":1,"b":[2]}`},
		{"empty string disables", "", `{"a":1,"b":[2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(value, nil, tt.indent)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringify_IndentClamp(t *testing.T) {
	value := []any{1}

	ten, err := Stringify(value, nil, 10)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	over, err := Stringify(value, nil, 99)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if over != ten {
		t.Errorf("Numeric indent above 10 should clamp: %q vs %q", over, ten)
	}

	short, err := Stringify(value, nil, "abcdefghij")
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	long, err := Stringify(value, nil, "abcdefghijKLMNOP")
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if long != short {
		t.Errorf("String indent beyond 10 bytes should clamp: %q vs %q", long, short)
	}
}

func TestStringify_IndentClampRuneBoundary(t *testing.T) {
	// The 10-byte clamp must not cut through a multi-byte rune.
	tests := []struct {
		name   string
		indent string
		gap    string
	}{
		{"emoji straddles limit", "booooooop🎉", "booooooop"},
		{"two-byte rune straddles limit", "aéééééb", "aéééé"},
		{"multi-byte fits exactly", "ééééé", "ééééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify([]any{1}, nil, tt.indent)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			want := "[\n" + tt.gap + "1\n]"
			if got != want {
				t.Errorf("Expected %q, got %q", want, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Output is not valid UTF-8: %q", got)
			}
		})
	}
}

func TestStringify_BoxedIndent(t *testing.T) {
	n := 4
	got, err := Stringify([]any{1}, nil, &n)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	want := "[\n    1\n]"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// ============================================================
// Enumeration Order Tests
// ============================================================

func TestStringify_EnumerationOrder(t *testing.T) {
	o := ObjectOf(
		Member{"b", 1},
		Member{"10", 2},
		Member{"a", 3},
		Member{"2", 4},
		Member{"0", 5},
	)

	got, err := Stringify(o, nil, nil)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	// Array-index keys numerically first, then insertion order.
	want := `{"0":5,"2":4,"10":2,"b":1,"a":3}`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestStringify_LeadingZeroKeyIsNotAnIndex(t *testing.T) {
	o := ObjectOf(
		Member{"01", 1},
		Member{"1", 2},
	)

	got, err := Stringify(o, nil, nil)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	want := `{"1":2,"01":1}`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestStringify_Deterministic(t *testing.T) {
	value := ObjectOf(
		Member{"m", map[string]any{"z": 1, "y": []any{1, 2}, "x": nil}},
		Member{"s", []any{"a", true}},
	)

	first, err := Stringify(value, nil, 2)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	second, err := Stringify(value, nil, 2)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if first != second {
		t.Errorf("Repeated calls differ:\n%s\n%s", first, second)
	}
}

// ============================================================
// Unsupported Kind Tests
// ============================================================

func TestStringify_UnsupportedTypes(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"struct", struct{ X int }{1}},
		{"complex", complex(1, 2)},
		{"int-keyed map", map[int]string{1: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Stringify(tt.value, nil, nil); err == nil {
				t.Fatalf("Expected error for %T", tt.value)
			}
		})
	}
}
