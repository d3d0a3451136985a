package govcard_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	govcard "github.com/ghettovoice/govcard"
	"github.com/ghettovoice/govcard/prop"
)

func seqIDGen() prop.IDGen {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func mustParseCard(tb testing.TB, src string, opts ...govcard.ParseOption) *govcard.Card {
	tb.Helper()
	c, err := govcard.ParseCard(src, opts...)
	if err != nil {
		tb.Fatalf("ParseCard() error = %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := govcard.New("John Doe")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	want := "BEGIN:VCARD\nVERSION:4.0\nFN:John Doe\nEND:VCARD\n"
	if got := c.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestNew_EscapesFn(t *testing.T) {
	t.Parallel()

	c, err := govcard.New("Doe; John")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.Render(), `FN:Doe\; John`) {
		t.Errorf("Render() = %q, want escaped FN", c.Render())
	}
}

func TestCard_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		wantErrs []error
	}{
		{
			"minimal ok",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nEND:VCARD\r\n",
			nil,
		},
		{
			"full ok",
			"BEGIN:VCARD\r\n" +
				"VERSION:4.0\r\n" +
				"FN:Simon Perreault\r\n" +
				"N:Perreault;Simon;;;ing. jr,M.Sc.\r\n" +
				"BDAY:--0203\r\n" +
				"GENDER:M\r\n" +
				"ADR;TYPE=work:;Suite D2-630;2875 Laurier;Quebec;QC;G1V 2M2;Canada\r\n" +
				"TEL;VALUE=uri;TYPE=work:tel:+1-418-656-9254;ext=102\r\n" +
				"EMAIL;TYPE=work:simon.perreault@viagenie.ca\r\n" +
				"LANG;PREF=1:fr\r\n" +
				"LANG;PREF=2:en\r\n" +
				"TZ;VALUE=utc-offset:-0500\r\n" +
				"REV:20110914T163040Z\r\n" +
				"END:VCARD\r\n",
			nil,
		},
		{
			"missing version",
			"BEGIN:VCARD\r\nFN:John Doe\r\nEND:VCARD\r\n",
			[]error{govcard.ErrMissingVersion},
		},
		{
			"version not first",
			"BEGIN:VCARD\r\nFN:John Doe\r\nVERSION:4.0\r\nEND:VCARD\r\n",
			[]error{govcard.ErrMissingVersion},
		},
		{
			"unsupported version",
			"BEGIN:VCARD\r\nVERSION:3.0\r\nFN:John Doe\r\nEND:VCARD\r\n",
			[]error{govcard.ErrUnsupportedVersion},
		},
		{
			"missing fn",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nN:Doe;John;;;\r\nEND:VCARD\r\n",
			[]error{govcard.ErrMissingFn},
		},
		{
			"duplicate single instance property",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nN:Doe;John;;;\r\nN:Doe;Jane;;;\r\nEND:VCARD\r\n",
			[]error{govcard.ErrCardinalityViolation},
		},
		{
			"duplicate version",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nVERSION:4.0\r\nFN:John Doe\r\nEND:VCARD\r\n",
			[]error{govcard.ErrCardinalityViolation},
		},
		{
			"param not allowed",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nFN;GEO=\"geo:1,2\":John Doe\r\nEND:VCARD\r\n",
			[]error{govcard.ErrParamNotAllowed},
		},
		{
			"repeatable property ok",
			"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nTEL:tel:+1\r\nTEL:tel:+2\r\nEMAIL:a@b.c\r\nEND:VCARD\r\n",
			nil,
		},
		{
			"multiple violations collected",
			"BEGIN:VCARD\r\nVERSION:2.1\r\nBDAY:19960415\r\nBDAY:19970415\r\nEND:VCARD\r\n",
			[]error{govcard.ErrUnsupportedVersion, govcard.ErrMissingFn, govcard.ErrCardinalityViolation},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			card := mustParseCard(t, c.in)
			err := card.Validate()
			if len(c.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				if !card.IsValid() {
					t.Error("IsValid() = false")
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want %v", c.wantErrs)
			}
			for _, want := range c.wantErrs {
				if diff := cmp.Diff(err, want, cmpopts.EquateErrors()); diff != "" {
					t.Errorf("Validate() = %v, want wrapped %v", err, want)
				}
			}
			if card.IsValid() {
				t.Error("IsValid() = true")
			}
		})
	}
}

func TestCard_AddProperty(t *testing.T) {
	t.Parallel()

	c, err := govcard.New("John Doe")
	if err != nil {
		t.Fatal(err)
	}
	p, err := c.AddProperty("EMAIL;TYPE=work:jdoe@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() == "" {
		t.Error("expected a generated id")
	}
	if got := c.PropertiesByName(prop.Email); len(got) != 1 || got[0] != p {
		t.Errorf("PropertiesByName(EMAIL) = %v", got)
	}

	if _, err := c.AddProperty("BEGIN:VCARD"); err == nil {
		t.Error("expected error for misplaced BEGIN")
	}
	if _, err := c.AddProperty("END:VCARD"); err == nil {
		t.Error("expected error for misplaced END")
	}
	if _, err := c.AddProperty("NOT A LINE"); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestCard_ReplaceProperty(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nTEL:tel:+111\r\nEND:VCARD\r\n"
	c := mustParseCard(t, src, govcard.WithIDGen(seqIDGen()))

	tel := c.PropertiesByName(prop.Tel)[0]
	id := tel.ID()

	if err := c.ReplaceProperty(id, "TEL;TYPE=cell:tel:+222"); err != nil {
		t.Fatal(err)
	}
	got, ok := c.Property(id)
	if !ok {
		t.Fatal("property lost after replace")
	}
	if got.Raw() != "tel:+222" {
		t.Errorf("Raw() = %q, want %q", got.Raw(), "tel:+222")
	}

	// Replacement is a full re-parse, a malformed line leaves the
	// property untouched.
	if err := c.ReplaceProperty(id, "TEL"); err == nil {
		t.Error("expected error for malformed replacement")
	}
	if got.Raw() != "tel:+222" {
		t.Errorf("Raw() = %q after failed replace", got.Raw())
	}

	err := c.ReplaceProperty("no-such-id", "TEL:tel:+333")
	if diff := cmp.Diff(err, govcard.ErrNotFound, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("ReplaceProperty() error = %v, want %v", err, govcard.ErrNotFound)
	}
}

func TestCard_RemoveProperty(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nFN:J. Doe\r\nTEL:tel:+111\r\nEND:VCARD\r\n"
	c := mustParseCard(t, src)

	tel := c.PropertiesByName(prop.Tel)[0]
	if err := c.RemoveProperty(tel.ID()); err != nil {
		t.Fatal(err)
	}
	if len(c.PropertiesByName(prop.Tel)) != 0 {
		t.Error("TEL still present after removal")
	}

	err := c.RemoveProperty(tel.ID())
	if diff := cmp.Diff(err, govcard.ErrNotFound, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("RemoveProperty() error = %v, want %v", err, govcard.ErrNotFound)
	}

	// The second FN may go, the last one may not.
	fns := c.PropertiesByName(prop.Fn)
	if err := c.RemoveProperty(fns[1].ID()); err != nil {
		t.Fatal(err)
	}
	fns = c.PropertiesByName(prop.Fn)
	err = c.RemoveProperty(fns[0].ID())
	if diff := cmp.Diff(err, govcard.ErrCardinalityViolation, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("RemoveProperty(last FN) error = %v, want %v", err, govcard.ErrCardinalityViolation)
	}

	ver := c.PropertiesByName(prop.Version)[0]
	err = c.RemoveProperty(ver.ID())
	if diff := cmp.Diff(err, govcard.ErrCardinalityViolation, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("RemoveProperty(VERSION) error = %v, want %v", err, govcard.ErrCardinalityViolation)
	}
}

func TestCard_Render_VersionFirst(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\r\nFN:John Doe\r\nVERSION:4.0\r\nEND:VCARD\r\n"
	c := mustParseCard(t, src)
	want := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nEND:VCARD\r\n"
	if got := c.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestCard_Render_FoldsLongLines(t *testing.T) {
	t.Parallel()

	note := strings.Repeat("x", 100)
	c, err := govcard.New("John Doe")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddProperty("NOTE:" + note); err != nil {
		t.Fatal(err)
	}
	for _, ln := range strings.Split(strings.TrimSuffix(c.Render(), "\n"), "\n") {
		if len(ln) > 75 {
			t.Errorf("rendered line exceeds 75 octets: %q", ln)
		}
	}

	// Folding is transparent: the card parses back identical.
	c2 := mustParseCard(t, c.Render())
	if !c.Equal(c2) {
		t.Errorf("round trip mismatch:\n%s\n%s", c, c2)
	}
}

func TestCard_RenderParseRoundTrip(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Simon Perreault\r\n" +
		"N:Perreault;Simon;;;ing. jr,M.Sc.\r\n" +
		"BDAY:--0203\r\n" +
		"ANNIVERSARY:20090808T1430-0500\r\n" +
		"GENDER:M\r\n" +
		"ADR;TYPE=work:;Suite D2-630;2875 Laurier;Quebec;QC;G1V 2M2;Canada\r\n" +
		"TEL;VALUE=uri;PREF=1;TYPE=\"work,voice\":tel:+1-418-656-9254;ext=102\r\n" +
		"EMAIL;TYPE=work:simon.perreault@viagenie.ca\r\n" +
		"GEO;TYPE=work:geo:46.772673,-71.282945\r\n" +
		"TZ;VALUE=utc-offset:-0500\r\n" +
		"REV:20110914T163040Z\r\n" +
		"END:VCARD\r\n"
	c := mustParseCard(t, src)
	if got := c.Render(); got != src {
		t.Errorf("Render() mismatch:\ngot  %q\nwant %q", got, src)
	}
}

func TestCard_RenderParseRoundTrip_LF(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\nVERSION:4.0\nFN:John Doe\nEND:VCARD\n"
	c := mustParseCard(t, src)
	if got := c.Render(); got != src {
		t.Errorf("Render() = %q, want the LF source reproduced exactly", got)
	}
	if got := c.Clone().Render(); got != src {
		t.Errorf("Clone().Render() = %q, want %q", got, src)
	}
}

func TestCard_CloneEqual(t *testing.T) {
	t.Parallel()

	src := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nTEL:tel:+111\r\nEND:VCARD\r\n"
	c := mustParseCard(t, src)
	c2 := c.Clone()
	if !c.Equal(c2) {
		t.Error("clone not equal to original")
	}
	tel := c2.PropertiesByName(prop.Tel)[0]
	if err := c2.ReplaceProperty(tel.ID(), "TEL:tel:+999"); err != nil {
		t.Fatal(err)
	}
	if c.Equal(c2) {
		t.Error("mutated clone still equal to original")
	}
}
