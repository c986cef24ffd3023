package daterange

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// MaxRangeDays caps how many days a single range may span. Requests beyond
// this are rejected before day expansion so a hostile range cannot force
// unbounded iteration.
const MaxRangeDays = 366

var (
	ErrInvalidFormat = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	ErrStartAfterEnd = errors.New("start date must be on or before end date")
	ErrDateInPast    = errors.New("start date must not be in the past")
	ErrRangeTooLong  = fmt.Errorf("date range must not span more than %d days", MaxRangeDays)
)

// DateRange is an inclusive interval of calendar days. Both endpoints are
// normalized to midnight UTC; comparisons ignore any time-of-day component.
// Immutable once constructed.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Parse builds a DateRange from two YYYY-MM-DD strings. Components must
// denote real calendar dates (2024-02-30 and 2024-13-01 are rejected) and
// start must not come after end. A single-day range (start == end) is valid.
func Parse(start, end string) (DateRange, error) {
	s, err := ParseDay(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return DateRange{}, err
	}
	if s.After(e) {
		return DateRange{}, ErrStartAfterEnd
	}
	return DateRange{Start: s, End: e}, nil
}

// New builds a DateRange from two timestamps, truncating each to its
// calendar day before comparing.
func New(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return DateRange{}, ErrStartAfterEnd
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDay parses a single YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	// time.Parse normalizes out-of-range components (2024-02-30 becomes
	// 2024-03-01), so a round-trip check is needed to reject them.
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil || t.Format(Layout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// Day truncates a timestamp to its calendar day in UTC. All range
// comparisons go through this so timezone drift cannot shift a booking by
// one day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateNotPast rejects ranges whose start falls before today's calendar
// date. Today itself is admissible.
func (r DateRange) ValidateNotPast(now time.Time) error {
	if r.Start.Before(Day(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, r.Start.Format(Layout))
	}
	return nil
}

// Len is the number of calendar days in the range, inclusive.
func (r DateRange) Len() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// ValidateLength enforces MaxRangeDays.
func (r DateRange) ValidateLength() error {
	if r.Len() > MaxRangeDays {
		return ErrRangeTooLong
	}
	return nil
}

// Days expands the range into its constituent calendar days, inclusive of
// both endpoints. Callers must have applied ValidateLength first.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether two ranges share at least one calendar day.
// Closed-closed semantics: a range ending on the day another begins
// overlaps it.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Contains reports whether the given day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(Layout) + " to " + r.End.Format(Layout)
}

// OverlapError reports a candidate range colliding with an existing one.
type OverlapError struct {
	Candidate   DateRange
	Conflicting DateRange
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("range %s overlaps existing booking %s", e.Candidate, e.Conflicting)
}

// ValidateNoOverlap checks a candidate against every existing range. On
// collision it returns an *OverlapError naming the conflicting range with
// the earliest start, so the reported conflict does not depend on the order
// the existing ranges were supplied in.
func ValidateNoOverlap(candidate DateRange, existing []DateRange) error {
	var conflict *DateRange
	for i := range existing {
		if !candidate.Overlaps(existing[i]) {
			continue
		}
		if conflict == nil || existing[i].Start.Before(conflict.Start) {
			conflict = &existing[i]
		}
	}
	if conflict != nil {
		return &OverlapError{Candidate: candidate, Conflicting: *conflict}
	}
	return nil
}
