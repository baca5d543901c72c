package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateKind tags which wire encoding a DateLike was built from.
type DateKind uint8

const (
	DateNone DateKind = iota
	DateNative
	DateEpochSeconds
	DateISO
)

// DateLike is a date that may arrive as a native time, an epoch-seconds
// object, or an ISO-8601 string. Time is the only way to read it back so
// every comparison goes through the same normalisation.
type DateLike struct {
	kind    DateKind
	native  time.Time
	seconds int64
	nanos   int64
	iso     string
}

// Native wraps an already parsed time.
func Native(t time.Time) DateLike {
	if t.IsZero() {
		return DateLike{}
	}
	return DateLike{kind: DateNative, native: t}
}

// EpochSeconds wraps a seconds/nanoseconds pair.
func EpochSeconds(sec, nsec int64) DateLike {
	return DateLike{kind: DateEpochSeconds, seconds: sec, nanos: nsec}
}

// ISO wraps an unparsed string. Parsing is deferred to Time.
func ISO(s string) DateLike {
	if strings.TrimSpace(s) == "" {
		return DateLike{}
	}
	return DateLike{kind: DateISO, iso: s}
}

// NativePtr converts a nullable column value.
func NativePtr(t *time.Time) DateLike {
	if t == nil {
		return DateLike{}
	}
	return Native(*t)
}

// Kind reports the encoding the value was built from.
func (d DateLike) Kind() DateKind { return d.kind }

// IsZero reports whether no date was supplied at all.
func (d DateLike) IsZero() bool { return d.kind == DateNone }

// Raw returns the original ISO text, if any.
func (d DateLike) Raw() string { return d.iso }

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time normalises the value. The boolean is false when no date was supplied
// or the ISO text cannot be parsed; callers decide what that means.
func (d DateLike) Time() (time.Time, bool) {
	switch d.kind {
	case DateNative:
		return d.native, true
	case DateEpochSeconds:
		return time.Unix(d.seconds, d.nanos).UTC(), true
	case DateISO:
		s := strings.TrimSpace(d.iso)
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Ptr returns the normalised time as a nullable value for storage.
func (d DateLike) Ptr() *time.Time {
	t, ok := d.Time()
	if !ok {
		return nil
	}
	return &t
}

// epochObject covers both the client SDK and the admin SDK timestamp shapes.
type epochObject struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

// UnmarshalJSON accepts null, an ISO string, an epoch-seconds number or an
// epoch-seconds object. Anything else decodes to the zero DateLike.
func (d *DateLike) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*d = DateLike{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = ISO(s)
	case '{':
		var obj epochObject
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		switch {
		case obj.Seconds != nil:
			*d = EpochSeconds(*obj.Seconds, obj.Nanoseconds)
		case obj.USeconds != nil:
			*d = EpochSeconds(*obj.USeconds, obj.UNanoseconds)
		}
	default:
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			*d = EpochSeconds(int64(f), 0)
		}
	}
	return nil
}

// MarshalJSON always emits the normalised RFC3339 form, or null.
func (d DateLike) MarshalJSON() ([]byte, error) {
	t, ok := d.Time()
	if !ok {
		if d.kind == DateISO {
			return json.Marshal(d.iso)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
