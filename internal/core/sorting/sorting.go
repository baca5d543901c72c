// Package sorting is the list-view sort facility: a header-click state
// machine and a stable, type-aware comparator over dotted field paths.
package sorting

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction of a column. The zero value means unsorted.
type Direction string

const (
	None Direction = ""
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps free text onto a Direction; unknown text is None.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc
	case "desc", "descending":
		return Desc
	default:
		return None
	}
}

// State is the current sort column and direction of a table.
type State struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// Click advances the state for a click on the header of key. Repeated clicks
// on one key cycle unsorted -> asc -> desc -> unsorted; a click on another
// key starts at asc on that key.
func (s State) Click(key string) State {
	if key == "" {
		return State{}
	}
	if key != s.Key {
		return State{Key: key, Dir: Asc}
	}
	switch s.Dir {
	case Asc:
		return State{Key: key, Dir: Desc}
	case Desc:
		return State{}
	default:
		return State{Key: key, Dir: Asc}
	}
}

// Sorted reports whether the state orders anything.
func (s State) Sorted() bool { return s.Key != "" && s.Dir != None }

// Apply sorts data according to the state.
func Apply[T any](s State, data []T) []T {
	return Sort(data, s.Key, s.Dir)
}

// Sort returns a sorted copy of data ordered by the value at the dotted path
// key. The input is never modified. An empty key or None direction returns
// the data in its original order. Sorting is stable.
//
// Missing values sort last ascending and first descending. Strings compare
// case-insensitively with locale collation, numbers numerically, time-like
// values by instant, and everything else by its case-folded text.
func Sort[T any](data []T, key string, dir Direction) []T {
	out := slices.Clone(data)
	if out == nil {
		out = []T{}
	}
	if key == "" || dir == None {
		return out
	}
	c := newComparer()
	slices.SortStableFunc(out, func(a, b T) int {
		return c.compare(Lookup(a, key), Lookup(b, key), dir)
	})
	return out
}

type comparer struct {
	coll *collate.Collator
}

// collate.Collator keeps scratch buffers, so one is built per Sort call.
func newComparer() *comparer {
	return &comparer{coll: collate.New(language.Und, collate.IgnoreCase)}
}

func (c *comparer) compare(a, b any, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if dir == Asc {
			return 1
		}
		return -1
	case b == nil:
		if dir == Asc {
			return -1
		}
		return 1
	}
	r := c.compareValues(a, b)
	if dir == Desc {
		return -r
	}
	return r
}

func (c *comparer) compareValues(a, b any) int {
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return c.compareText(as, bs)
	}

	if an, ok := number(a); ok {
		if bn, ok := number(b); ok {
			return cmp.Compare(an, bn)
		}
	}

	_, aTime := instant(a)
	_, bTime := instant(b)
	if aTime || bTime {
		am, aok := instant(a)
		bm, bok := instant(b)
		if aok && bok {
			return cmp.Compare(am, bm)
		}
	}

	return c.compareText(fmt.Sprint(a), fmt.Sprint(b))
}

func (c *comparer) compareText(a, b string) int {
	if r := c.coll.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

type timer interface {
	Time() (time.Time, bool)
}

// instant converts time-like values to epoch milliseconds: time.Time, any
// value with a Time() (time.Time, bool) method, and seconds-count shapes
// (a map or struct with a "seconds" member).
func instant(v any) (int64, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli(), true
	case *time.Time:
		if t == nil {
			return 0, false
		}
		return t.UnixMilli(), true
	case timer:
		tm, ok := t.Time()
		if !ok {
			return 0, false
		}
		return tm.UnixMilli(), true
	}
	secs := Lookup(v, "seconds")
	if secs == nil {
		secs = Lookup(v, "_seconds")
	}
	if n, ok := number(secs); ok {
		return int64(n * 1000), true
	}
	return 0, false
}

// Lookup descends the dotted path through maps, structs and pointers and
// returns the value found, or nil when any step is missing. Struct members
// match on field name (case-insensitively) or on their json tag.
func Lookup(v any, path string) any {
	cur := reflect.ValueOf(v)
	for _, part := range strings.Split(path, ".") {
		cur = indirect(cur)
		if !cur.IsValid() {
			return nil
		}
		switch cur.Kind() {
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil
			}
			cur = cur.MapIndex(reflect.ValueOf(part).Convert(cur.Type().Key()))
		case reflect.Struct:
			cur = field(cur, part)
		default:
			return nil
		}
	}
	cur = indirect(cur)
	if !cur.IsValid() || !cur.CanInterface() {
		return nil
	}
	out := cur.Interface()
	if t, ok := out.(timer); ok {
		if _, set := t.Time(); !set {
			return nil
		}
	}
	return out
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func field(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name || strings.EqualFold(f.Name, name) {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}
