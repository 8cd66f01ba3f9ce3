package rawjson

import "fmt"

// Replacer controls per-property emission. It is called with the
// container being emitted, the property key and the value (after any
// JSONAs hook), and answers with one of the four Response kinds.
// A non-nil error aborts the whole Stringify call.
type Replacer func(holder any, key string, value any) (Response, error)

type responseKind uint8

const (
	responseInvalid responseKind = iota
	responseLiteral
	responseInclude
	responseExclude
	responseUseDefault
)

// Response is a replacer's answer for one property. The zero value is
// invalid; construct responses with Literal, Include, Exclude or
// UseDefault.
type Response struct {
	kind responseKind
	text string
}

// Literal answers with already-serialized output text. The text is
// emitted verbatim: no quoting, no recursion, no validation.
func Literal(text string) Response {
	return Response{kind: responseLiteral, text: text}
}

// Include answers "emit this property with default behavior".
func Include() Response {
	return Response{kind: responseInclude}
}

// Exclude answers "omit this property entirely".
func Exclude() Response {
	return Response{kind: responseExclude}
}

// UseDefault answers "no opinion"; emission proceeds with default
// behavior, identically to Include.
func UseDefault() Response {
	return Response{kind: responseUseDefault}
}

// String returns the response kind for error messages.
func (r Response) String() string {
	switch r.kind {
	case responseLiteral:
		return fmt.Sprintf("Literal(%q)", r.text)
	case responseInclude:
		return "Include"
	case responseExclude:
		return "Exclude"
	case responseUseDefault:
		return "UseDefault"
	default:
		return fmt.Sprintf("invalid response (kind %d)", uint8(r.kind))
	}
}
