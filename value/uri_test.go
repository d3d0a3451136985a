package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/govcard/value"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"https", "https://www.example.com/pub/id.vcf", nil},
		{"mailto", "mailto:jdoe@example.com", nil},
		{"tel", "tel:+1-555-555-5555;ext=5555", nil},
		{"urn", "urn:uuid:f81d4fae-7dec-11d0-a765-00a0c91e6bf6", nil},
		{"geo", "geo:46.772673,-71.282945", nil},
		{"geo with uncertainty", "geo:46.772673,-71.282945;u=10", nil},
		{"geo bad latitude", "geo:north,-71.282945", value.ErrInvalidValue},
		{"geo one coordinate", "geo:46.772673", value.ErrInvalidValue},
		{"no scheme", "www.example.com", value.ErrInvalidValue},
		{"empty", "", value.ErrInvalidValue},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := value.ParseURI(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ParseURI(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if err != nil {
				return
			}
			if got.Render() != c.in {
				t.Errorf("Render() = %q, want %q", got.Render(), c.in)
			}
			if !got.IsValid() {
				t.Errorf("IsValid() = false for %q", c.in)
			}
		})
	}
}

func TestParseLanguageTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"simple", "fr", "fr", nil},
		{"region", "fr-CA", "fr-CA", nil},
		{"canonicalized", "en-us", "en-US", nil},
		{"garbage", "not a tag", "", value.ErrInvalidValue},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := value.ParseLanguageTag(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ParseLanguageTag(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if err != nil {
				return
			}
			if got.Render() != c.want {
				t.Errorf("Render() = %q, want %q", got.Render(), c.want)
			}
		})
	}
}
