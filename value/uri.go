package value

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/util"
)

// URI is a uniform resource identifier value.
type URI struct {
	url.URL
}

// ParseURI parses raw text as a URI. A scheme is required.
// "geo:" URIs additionally require numeric coordinates.
func ParseURI[T constraints.Byteseq](raw T) (*URI, error) {
	s := string(raw)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, errtrace.Wrap(NewInvalidValueError(KindURI, s))
	}
	if util.EqFold(u.Scheme, "geo") {
		if err := checkGeo(u.Opaque); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return &URI{URL: *u}, nil
}

// checkGeo validates the coordinate list of a geo: URI (RFC 5870).
func checkGeo(opaque string) error {
	coords, _, _ := strings.Cut(opaque, ";")
	parts := strings.Split(coords, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return NewInvalidValueError(KindURI, "geo:"+opaque)
	}
	for _, p := range parts {
		if _, err := ParseFloat(p); err != nil {
			return NewInvalidValueError(KindURI, "geo:"+opaque)
		}
	}
	return nil
}

// Kind returns [KindURI].
func (u *URI) Kind() Kind { return KindURI }

// RenderTo writes the URI to w.
func (u *URI) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(w, u.URL.String()))
}

// Render returns the string representation of the URI.
func (u *URI) Render() string {
	if u == nil {
		return ""
	}
	return u.URL.String()
}

// String returns the string representation of the value.
func (u *URI) String() string { return u.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
	}
}

// Clone returns a deep copy of the value.
func (u *URI) Clone() Value {
	if u == nil {
		return (*URI)(nil)
	}
	u2 := *u
	if u.User != nil {
		if pwd, ok := u.User.Password(); ok {
			u2.User = url.UserPassword(u.User.Username(), pwd)
		} else {
			u2.User = url.User(u.User.Username())
		}
	}
	return &u2
}

// Equal compares this value with another for equality.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}
	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.URL.String() == other.URL.String()
}

// IsValid checks whether the value is well formed.
func (u *URI) IsValid() bool {
	return u != nil && util.TrimSP(u.Scheme) != "" &&
		(util.TrimSP(u.Opaque) != "" ||
			util.TrimSP(u.Host) != "" ||
			util.TrimSP(u.Path) != "")
}
