// Package grammar implements the low level vCard 4.0 text grammar:
// line folding, text escaping and content line scanning.
package grammar

//go:generate go tool errtrace -w .

// Error is a grammar violation error.
type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput      Error = "empty input"
	ErrMissingColon    Error = "missing ':' delimiter"
	ErrEmptyName       Error = "empty property name"
	ErrIllegalNameChar Error = "illegal character in name"
	ErrMissingEquals   Error = "missing '=' in parameter"
	ErrUnclosedQuote   Error = "unclosed quoted parameter value"
	ErrIllegalChar     Error = "illegal character"
	ErrBadEscape       Error = "invalid escape sequence"
)

// IsNameChar reports whether c may appear in a property or parameter name
// or a group: ALPHA / DIGIT / "-".
func IsNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

// IsSafeChar reports whether c may appear in an unquoted parameter value:
// any character except CTL, DQUOTE, ";", ":".
func IsSafeChar(c byte) bool {
	return c == ' ' || c == '\t' || c == '!' ||
		c >= 0x23 && c <= 0x39 || c >= 0x3c && c <= 0x7e || c >= 0x80
}

// IsQSafeChar reports whether c may appear inside a quoted parameter value:
// any character except CTL and DQUOTE.
func IsQSafeChar(c byte) bool {
	return c == ' ' || c == '\t' || c == '!' ||
		c >= 0x23 && c <= 0x7e || c >= 0x80
}

// IsValueChar reports whether c may appear in a property value.
func IsValueChar(c byte) bool {
	return c == ' ' || c == '\t' || c >= 0x21 && c <= 0x7e || c >= 0x80
}

// IsName reports whether s is a valid name token (group, property or
// parameter name).
func IsName[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsNameChar(s[i]) {
			return false
		}
	}
	return true
}

// IsXName reports whether s is an extension name token ("x-" prefix).
func IsXName[T ~string | ~[]byte](s T) bool {
	return len(s) > 2 && (s[0] == 'x' || s[0] == 'X') && s[1] == '-' && IsName(s)
}
