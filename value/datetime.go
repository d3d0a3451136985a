package value

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/util"
)

// Absent marks a missing component of a truncated date or time.
const Absent = -1

// Date is a calendar date, possibly truncated.
// Missing components hold [Absent].
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses an ISO 8601 basic date:
// YYYYMMDD, YYYY-MM, YYYY, --MMDD, --MM or ---DD.
func ParseDate[T constraints.Byteseq](raw T) (*Date, error) {
	d, err := parseDate(string(raw), false)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return d, nil
}

func parseDate(s string, noReduc bool) (*Date, error) {
	d := &Date{Year: Absent, Month: Absent, Day: Absent}
	switch {
	case strings.HasPrefix(s, "---"):
		var ok bool
		if d.Day, ok = num2(s[3:]); !ok {
			return nil, NewInvalidValueError(KindDate, s)
		}
	case strings.HasPrefix(s, "--"):
		rest := s[2:]
		var ok bool
		switch len(rest) {
		case 2:
			if noReduc {
				return nil, NewInvalidValueError(KindDate, s)
			}
			d.Month, ok = num2(rest)
		case 4:
			d.Month, ok = num2(rest[:2])
			if ok {
				d.Day, ok = num2(rest[2:])
			}
		}
		if !ok {
			return nil, NewInvalidValueError(KindDate, s)
		}
	default:
		switch {
		case len(s) == 8 && isDigits(s):
			d.Year, _ = strconv.Atoi(s[:4])
			d.Month, _ = num2(s[4:6])
			d.Day, _ = num2(s[6:8])
		case !noReduc && len(s) == 7 && s[4] == '-' && isDigits(s[:4]):
			d.Year, _ = strconv.Atoi(s[:4])
			var ok bool
			if d.Month, ok = num2(s[5:7]); !ok {
				return nil, NewInvalidValueError(KindDate, s)
			}
		case !noReduc && len(s) == 4 && isDigits(s):
			d.Year, _ = strconv.Atoi(s)
		default:
			return nil, NewInvalidValueError(KindDate, s)
		}
	}
	if !d.IsValid() {
		return nil, NewInvalidValueError(KindDate, s)
	}
	return d, nil
}

// Kind returns [KindDate].
func (d *Date) Kind() Kind { return KindDate }

// RenderTo writes the date to w.
func (d *Date) RenderTo(w io.Writer) (num int, err error) {
	if d == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, d.Render()))
}

// Render returns the ISO 8601 basic form, truncated components elided.
func (d *Date) Render() string {
	if d == nil {
		return ""
	}
	switch {
	case d.Year != Absent && d.Month != Absent && d.Day != Absent:
		return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
	case d.Year != Absent && d.Month != Absent:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case d.Year != Absent:
		return fmt.Sprintf("%04d", d.Year)
	case d.Month != Absent && d.Day != Absent:
		return fmt.Sprintf("--%02d%02d", d.Month, d.Day)
	case d.Month != Absent:
		return fmt.Sprintf("--%02d", d.Month)
	case d.Day != Absent:
		return fmt.Sprintf("---%02d", d.Day)
	default:
		return ""
	}
}

// String returns the string representation of the value.
func (d *Date) String() string { return d.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (d *Date) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, d.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(d.String()))
	default:
		type hideMethods Date
		type Date hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Date)(d))
	}
}

// Clone returns a copy of the value.
func (d *Date) Clone() Value {
	if d == nil {
		return (*Date)(nil)
	}
	d2 := *d
	return &d2
}

// Equal compares this value with another for equality.
func (d *Date) Equal(val any) bool {
	var other *Date
	switch v := val.(type) {
	case Date:
		other = &v
	case *Date:
		other = v
	default:
		return false
	}
	if d == other {
		return true
	} else if d == nil || other == nil {
		return false
	}
	return *d == *other
}

// IsValid checks whether the value is well formed.
func (d *Date) IsValid() bool {
	if d == nil {
		return false
	}
	if d.Year == Absent && d.Month == Absent && d.Day == Absent {
		return false
	}
	if d.Year != Absent && (d.Year < 0 || d.Year > 9999) {
		return false
	}
	if d.Month != Absent && (d.Month < 1 || d.Month > 12) {
		return false
	}
	if d.Day != Absent && (d.Day < 1 || d.Day > 31) {
		return false
	}
	// a day with an absent month is only legal in the ---DD form
	return !(d.Year != Absent && d.Month == Absent && d.Day != Absent)
}

// Time is a time of day, possibly truncated from the front.
// Missing components hold [Absent].
type Time struct {
	Hour int
	Min  int
	Sec  int
	// Zone is the UTC designator or offset, nil for floating time.
	Zone *UTCOffset
}

// ParseTime parses an ISO 8601 basic time:
// HHMMSS, HHMM, HH, -MMSS, -MM or --SS, with an optional zone.
func ParseTime[T constraints.Byteseq](raw T) (*Time, error) {
	t, err := parseTime(string(raw), false)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return t, nil
}

func parseTime(s string, noTrunc bool) (*Time, error) {
	t := &Time{Hour: Absent, Min: Absent, Sec: Absent}

	lead := 0
	for lead < 2 && lead < len(s) && s[lead] == '-' {
		lead++
	}
	if noTrunc && lead > 0 {
		return nil, NewInvalidValueError(KindTime, s)
	}
	body := s[lead:]

	zpos := strings.IndexAny(body, "Zz+-")
	if zpos >= 0 {
		zone, err := ParseUTCOffset(body[zpos:])
		if err != nil {
			return nil, NewInvalidValueError(KindTime, s)
		}
		t.Zone = zone
		body = body[:zpos]
	}

	var ok bool
	switch {
	case lead == 0 && len(body) == 6:
		t.Hour, ok = num2(body[:2])
		if ok {
			t.Min, ok = num2(body[2:4])
		}
		if ok {
			t.Sec, ok = num2(body[4:6])
		}
	case lead == 0 && len(body) == 4:
		t.Hour, ok = num2(body[:2])
		if ok {
			t.Min, ok = num2(body[2:4])
		}
	case lead == 0 && len(body) == 2:
		t.Hour, ok = num2(body)
	case lead == 1 && len(body) == 4:
		t.Min, ok = num2(body[:2])
		if ok {
			t.Sec, ok = num2(body[2:4])
		}
	case lead == 1 && len(body) == 2:
		t.Min, ok = num2(body)
	case lead == 2 && len(body) == 2:
		t.Sec, ok = num2(body)
	}
	if !ok || !t.IsValid() {
		return nil, NewInvalidValueError(KindTime, s)
	}
	return t, nil
}

// Kind returns [KindTime].
func (t *Time) Kind() Kind { return KindTime }

// RenderTo writes the time to w.
func (t *Time) RenderTo(w io.Writer) (num int, err error) {
	if t == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, t.Render()))
}

// Render returns the ISO 8601 basic form with the zone suffix.
func (t *Time) Render() string {
	if t == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	switch {
	case t.Hour != Absent:
		fmt.Fprintf(sb, "%02d", t.Hour)
		if t.Min != Absent {
			fmt.Fprintf(sb, "%02d", t.Min)
			if t.Sec != Absent {
				fmt.Fprintf(sb, "%02d", t.Sec)
			}
		}
	case t.Min != Absent:
		fmt.Fprintf(sb, "-%02d", t.Min)
		if t.Sec != Absent {
			fmt.Fprintf(sb, "%02d", t.Sec)
		}
	case t.Sec != Absent:
		fmt.Fprintf(sb, "--%02d", t.Sec)
	}
	sb.WriteString(t.Zone.Render())
	return sb.String()
}

// String returns the string representation of the value.
func (t *Time) String() string { return t.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (t *Time) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, t.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(t.String()))
	default:
		type hideMethods Time
		type Time hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Time)(t))
	}
}

// Clone returns a deep copy of the value.
func (t *Time) Clone() Value {
	if t == nil {
		return (*Time)(nil)
	}
	t2 := *t
	if t.Zone != nil {
		z := *t.Zone
		t2.Zone = &z
	}
	return &t2
}

// Equal compares this value with another for equality.
func (t *Time) Equal(val any) bool {
	var other *Time
	switch v := val.(type) {
	case Time:
		other = &v
	case *Time:
		other = v
	default:
		return false
	}
	if t == other {
		return true
	} else if t == nil || other == nil {
		return false
	}
	if t.Hour != other.Hour || t.Min != other.Min || t.Sec != other.Sec {
		return false
	}
	if t.Zone == nil || other.Zone == nil {
		return t.Zone == other.Zone
	}
	return t.Zone.Equal(other.Zone)
}

// IsValid checks whether the value is well formed.
func (t *Time) IsValid() bool {
	if t == nil {
		return false
	}
	if t.Hour == Absent && t.Min == Absent && t.Sec == Absent {
		return false
	}
	if t.Hour != Absent && (t.Hour < 0 || t.Hour > 23) {
		return false
	}
	if t.Min != Absent && (t.Min < 0 || t.Min > 59) {
		return false
	}
	if t.Sec != Absent && (t.Sec < 0 || t.Sec > 59) {
		return false
	}
	// components may only be truncated from the front
	if t.Hour != Absent && t.Min == Absent && t.Sec != Absent {
		return false
	}
	return t.Zone == nil || t.Zone.IsValid()
}

// DateTime is a combined date and time.
type DateTime struct {
	Date Date
	Time Time
}

// ParseDateTime parses date "T" time where the date part is complete
// enough to anchor the time: YYYYMMDD, --MMDD or ---DD.
func ParseDateTime[T constraints.Byteseq](raw T) (*DateTime, error) {
	s := string(raw)
	ds, ts, ok := strings.Cut(s, "T")
	if !ok {
		return nil, errtrace.Wrap(NewInvalidValueError(KindDateTime, s))
	}
	d, err := parseDate(ds, true)
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidValueError(KindDateTime, s))
	}
	t, err := parseTime(ts, true)
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidValueError(KindDateTime, s))
	}
	return &DateTime{Date: *d, Time: *t}, nil
}

// Kind returns [KindDateTime].
func (dt *DateTime) Kind() Kind { return KindDateTime }

// RenderTo writes the date-time to w.
func (dt *DateTime) RenderTo(w io.Writer) (num int, err error) {
	if dt == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, dt.Render()))
}

// Render returns date "T" time.
func (dt *DateTime) Render() string {
	if dt == nil {
		return ""
	}
	return dt.Date.Render() + "T" + dt.Time.Render()
}

// String returns the string representation of the value.
func (dt *DateTime) String() string { return dt.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (dt *DateTime) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, dt.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(dt.String()))
	default:
		type hideMethods DateTime
		type DateTime hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*DateTime)(dt))
	}
}

// Clone returns a deep copy of the value.
func (dt *DateTime) Clone() Value {
	if dt == nil {
		return (*DateTime)(nil)
	}
	d2 := *dt
	if dt.Time.Zone != nil {
		z := *dt.Time.Zone
		d2.Time.Zone = &z
	}
	return &d2
}

// Equal compares this value with another for equality.
func (dt *DateTime) Equal(val any) bool {
	var other *DateTime
	switch v := val.(type) {
	case DateTime:
		other = &v
	case *DateTime:
		other = v
	default:
		return false
	}
	if dt == other {
		return true
	} else if dt == nil || other == nil {
		return false
	}
	return dt.Date.Equal(&other.Date) && dt.Time.Equal(&other.Time)
}

// IsValid checks whether the value is well formed.
func (dt *DateTime) IsValid() bool {
	return dt != nil && dt.Date.IsValid() && dt.Time.IsValid() &&
		dt.Date.Day != Absent && dt.Time.Hour != Absent
}

// ParseDateAndOrTime parses date-time, date, or "T" time.
func ParseDateAndOrTime[T constraints.Byteseq](raw T) (Value, error) {
	s := string(raw)
	if strings.HasPrefix(s, "T") {
		t, err := ParseTime(s[1:])
		if err != nil {
			return nil, errtrace.Wrap(NewInvalidValueError(KindDateAndOrTime, s))
		}
		return t, nil
	}
	if strings.Contains(s, "T") {
		dt, err := ParseDateTime(s)
		if err != nil {
			return nil, errtrace.Wrap(NewInvalidValueError(KindDateAndOrTime, s))
		}
		return dt, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidValueError(KindDateAndOrTime, s))
	}
	return d, nil
}

// Timestamp is a complete date and time of day, used by REV.
type Timestamp DateTime

// ParseTimestamp parses YYYYMMDD "T" HHMMSS with an optional zone.
func ParseTimestamp[T constraints.Byteseq](raw T) (*Timestamp, error) {
	s := string(raw)
	ds, ts, ok := strings.Cut(s, "T")
	if !ok || len(ds) != 8 {
		return nil, errtrace.Wrap(NewInvalidValueError(KindTimestamp, s))
	}
	dt, err := ParseDateTime(s)
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidValueError(KindTimestamp, s))
	}
	zlen := 0
	if i := strings.IndexAny(ts, "Zz+-"); i >= 0 {
		zlen = len(ts) - i
	}
	if len(ts)-zlen != 6 {
		return nil, errtrace.Wrap(NewInvalidValueError(KindTimestamp, s))
	}
	return (*Timestamp)(dt), nil
}

// Kind returns [KindTimestamp].
func (ts *Timestamp) Kind() Kind { return KindTimestamp }

// RenderTo writes the timestamp to w.
func (ts *Timestamp) RenderTo(w io.Writer) (num int, err error) {
	if ts == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, ts.Render()))
}

// Render returns date "T" time.
func (ts *Timestamp) Render() string { return (*DateTime)(ts).Render() }

// String returns the string representation of the value.
func (ts *Timestamp) String() string { return ts.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (ts *Timestamp) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, ts.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(ts.String()))
	default:
		type hideMethods Timestamp
		type Timestamp hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Timestamp)(ts))
	}
}

// Clone returns a deep copy of the value.
func (ts *Timestamp) Clone() Value {
	if ts == nil {
		return (*Timestamp)(nil)
	}
	return (*Timestamp)((*DateTime)(ts).Clone().(*DateTime))
}

// Equal compares this value with another for equality.
func (ts *Timestamp) Equal(val any) bool {
	var other *Timestamp
	switch v := val.(type) {
	case Timestamp:
		other = &v
	case *Timestamp:
		other = v
	default:
		return false
	}
	if ts == other {
		return true
	} else if ts == nil || other == nil {
		return false
	}
	return (*DateTime)(ts).Equal((*DateTime)(other))
}

// IsValid checks whether the value is well formed.
func (ts *Timestamp) IsValid() bool {
	return ts != nil && (*DateTime)(ts).IsValid() &&
		ts.Date.Year != Absent && ts.Time.Sec != Absent
}
