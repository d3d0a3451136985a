package prop_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/govcard/prop"
	"github.com/ghettovoice/govcard/value"
)

func staticID(id string) prop.IDGen {
	return func() string { return id }
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		group    string
		propName prop.Name
		kind     value.Kind
		raw      string
		wantErr  error
	}{
		{
			name:     "fn",
			in:       "FN:John Doe",
			propName: prop.Fn,
			kind:     value.KindText,
			raw:      "John Doe",
		},
		{
			name:     "lowercase name canonicalized",
			in:       "fn:John Doe",
			propName: prop.Fn,
			kind:     value.KindText,
			raw:      "John Doe",
		},
		{
			name:     "grouped tel",
			in:       "item1.TEL;TYPE=work:tel:+1-555-555-5555",
			group:    "item1",
			propName: prop.Tel,
			kind:     value.KindURI,
			raw:      "tel:+1-555-555-5555",
		},
		{
			name:     "structured n",
			in:       "N:Public;John;Quinlan;Mr.;Esq.",
			propName: prop.N,
			kind:     value.KindText,
			raw:      "Public;John;Quinlan;Mr.;Esq.",
		},
		{
			name:     "bday default kind",
			in:       "BDAY:19960415",
			propName: prop.Bday,
			kind:     value.KindDateAndOrTime,
			raw:      "19960415",
		},
		{
			name:     "bday value override",
			in:       "BDAY;VALUE=text:circa 1800",
			propName: prop.Bday,
			kind:     value.KindText,
			raw:      "circa 1800",
		},
		{
			name:     "tel text override",
			in:       "TEL;VALUE=text;TYPE=home:+33 01 23 45 67",
			propName: prop.Tel,
			kind:     value.KindText,
			raw:      "+33 01 23 45 67",
		},
		{
			name:     "extension property",
			in:       "X-QQ:8888",
			propName: prop.Name("X-QQ"),
			kind:     value.KindText,
			raw:      "8888",
		},
		{
			name:     "extension with kind override",
			in:       "X-KARMA;VALUE=integer:42",
			propName: prop.Name("X-KARMA"),
			kind:     value.KindInteger,
			raw:      "42",
		},
		{name: "missing colon", in: "FN", wantErr: prop.ErrMalformedLine},
		{name: "illegal name char", in: "F N:x", wantErr: prop.ErrMalformedLine},
		{name: "kind not allowed", in: "FN;VALUE=integer:5", wantErr: value.ErrUnknownValueType},
		{name: "unknown kind token", in: "FN;VALUE=blob:x", wantErr: value.ErrUnknownValueType},
		{name: "bad typed value", in: "REV:not-a-timestamp", wantErr: value.ErrInvalidValue},
		{name: "bad gender sex", in: "GENDER:X", wantErr: value.ErrInvalidValue},
		{name: "gender sex with identity", in: "GENDER:O;intersex", propName: prop.Gender, kind: value.KindText, raw: "O;intersex"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			p, err := prop.Parse(c.in, staticID("test-id"))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Parse(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if err != nil {
				return
			}
			if p.ID() != "test-id" {
				t.Errorf("ID() = %q, want %q", p.ID(), "test-id")
			}
			if p.Group() != c.group {
				t.Errorf("Group() = %q, want %q", p.Group(), c.group)
			}
			if p.Name() != c.propName {
				t.Errorf("Name() = %q, want %q", p.Name(), c.propName)
			}
			if p.Value().Kind() != c.kind {
				t.Errorf("Value().Kind() = %q, want %q", p.Value().Kind(), c.kind)
			}
			if p.Raw() != c.raw {
				t.Errorf("Raw() = %q, want %q", p.Raw(), c.raw)
			}
			if !p.IsValid() {
				t.Errorf("IsValid() = false for %q", c.in)
			}
		})
	}
}

func TestParse_DefaultIDGen(t *testing.T) {
	t.Parallel()

	p1, err := prop.Parse("FN:John Doe", nil)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := prop.Parse("FN:John Doe", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p1.ID() == "" || p2.ID() == "" {
		t.Fatal("expected non-empty generated ids")
	}
	if p1.ID() == p2.ID() {
		t.Errorf("expected distinct ids, both = %q", p1.ID())
	}
}

func TestProperty_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "FN:John Doe", "FN:John Doe"},
		{"name canonicalized", "fn:John Doe", "FN:John Doe"},
		{"group and params kept in order", "item1.TEL;TYPE=work,voice;PREF=1:tel:+1", "item1.TEL;TYPE=work,voice;PREF=1:tel:+1"},
		{"multi valued param rejoined", "TEL;TYPE=home,work:tel:+1", "TEL;TYPE=home,work:tel:+1"},
		{"repeated param rejoined", "TEL;TYPE=home;TYPE=work:tel:+1", "TEL;TYPE=home,work:tel:+1"},
		{"quoted param value", `EMAIL;TYPE="INTERNET,HOME":foo@example.com`, `EMAIL;TYPE="INTERNET,HOME":foo@example.com`},
		{"raw value preserved", `NOTE:one\,two\nthree`, `NOTE:one\,two\nthree`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			p, err := prop.Parse(c.in, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.Render(); got != c.want {
				t.Errorf("Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestProperty_Reparse(t *testing.T) {
	t.Parallel()

	p, err := prop.Parse("TEL;TYPE=home:tel:+111", staticID("keep-me"))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Reparse("EMAIL;PREF=1:foo@example.com"); err != nil {
		t.Fatal(err)
	}
	if p.ID() != "keep-me" {
		t.Errorf("ID() = %q, want identity kept", p.ID())
	}
	if p.Name() != prop.Email {
		t.Errorf("Name() = %q, want %q", p.Name(), prop.Email)
	}
	if p.Raw() != "foo@example.com" {
		t.Errorf("Raw() = %q, want %q", p.Raw(), "foo@example.com")
	}

	// A failed reparse leaves the property untouched.
	if err := p.Reparse("EMAIL"); err == nil {
		t.Fatal("expected error")
	}
	if p.Name() != prop.Email || p.Raw() != "foo@example.com" {
		t.Errorf("property changed after failed reparse: %s", p)
	}
}

func TestProperty_Equal(t *testing.T) {
	t.Parallel()

	p1, err := prop.Parse("FN:John Doe", staticID("a"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := prop.Parse("fn:John Doe", staticID("b"))
	if err != nil {
		t.Fatal(err)
	}
	if !p1.Equal(p2) {
		t.Error("expected semantic equality regardless of identity")
	}

	p3, err := prop.Parse("FN:Jane Doe", staticID("a"))
	if err != nil {
		t.Fatal(err)
	}
	if p1.Equal(p3) {
		t.Error("expected inequality for different values")
	}
}

func TestProperty_Clone(t *testing.T) {
	t.Parallel()

	p, err := prop.Parse("ADR;TYPE=home:;;123 Main Street;Any Town;CA;91921-1234;U.S.A.", staticID("a"))
	if err != nil {
		t.Fatal(err)
	}
	c := p.Clone()
	if c.ID() != p.ID() {
		t.Errorf("Clone() id = %q, want %q", c.ID(), p.ID())
	}
	if !p.Equal(c) {
		t.Error("clone not equal to original")
	}
	c.Params().Set(string(prop.ParamType), "work")
	if p.Params().Equal(c.Params()) {
		t.Error("mutating clone params changed the original")
	}
}
