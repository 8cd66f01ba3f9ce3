// Package rawjson implements JSON stringification with a raw replacer.
//
// The encoder reproduces the standard stringify transform of nested
// values into JSON text, with one extension: the caller-supplied
// replacer may answer with the already-serialized output text for a
// value instead of a replacement value. That text is emitted verbatim,
// so output does not have to be valid JSON:
//   - NaN / Infinity markers instead of null
//   - custom numeric formatting (fixed precision, hex, units)
//   - pre-rendered fragments spliced into a larger document
//
// # Value Model
//
// Scalars:    nil, bool, all integer/float kinds, string, json.Number
// Large ints: *big.Int (fails without a JSONAs override, as
//             JSON.stringify does for BigInt)
// Sequences:  any slice or array
// Mappings:   *Object (ordered) or map[string]V (sorted keys)
// Absent:     Undefined, funcs, channels
//
// Pointers act as boxed primitives and are unwrapped wherever a
// primitive is accepted, including the indent argument.
//
// # Replacer Protocol
//
// A Replacer is called once per property with the holder, the key and
// the (post-JSONAs) value, and answers with one of four responses:
//
//	Literal(text)  emit text verbatim, no quoting, no recursion
//	Include()      default emission
//	Exclude()      omit the property
//	UseDefault()   default emission (no opinion)
//
// Omitted properties vanish from mappings and become the literal null
// inside sequences. An omitted root yields the empty string.
//
// # Example
//
//	o := rawjson.NewObject().Set("x", math.NaN()).Set("y", 2)
//	text, _ := rawjson.Stringify(o, func(holder any, key string, v any) (rawjson.Response, error) {
//		if f, ok := v.(float64); ok && math.IsNaN(f) {
//			return rawjson.Literal("NaN"), nil
//		}
//		return rawjson.UseDefault(), nil
//	}, nil)
//	// text == `{"x":NaN,"y":2}`
//
// # Cycle Detection
//
// Containers on the active descent path are tracked on a per-Serializer
// stack. A replacer may call back into its Serializer to stringify
// sub-values mid-walk; the nested call shares the ancestor stack, so
// cycles spanning both invocations are still detected. A Serializer is
// synchronous and not safe for concurrent use.
//
// Decoding is out of scope: this package only encodes.
package rawjson
