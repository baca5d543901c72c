// Package assignment canonicalises campaign/kiosk relationship payloads.
package assignment

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Normalize turns a relationship payload into a deduplicated,
// order-preserving list of trimmed, non-empty identifiers.
//
// Accepted shapes are nil, a single identifier, a comma- or
// whitespace-delimited string, and slices of those (including []any from
// JSON decoding). Anything else yields an empty list; Normalize never fails.
func Normalize(input any) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	collect(input, &out, seen)
	return out
}

func collect(input any, out *[]string, seen map[string]struct{}) {
	switch v := input.(type) {
	case nil:
	case string:
		for _, id := range split(v) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			*out = append(*out, id)
		}
	case *string:
		if v != nil {
			collect(*v, out, seen)
		}
	case []string:
		for _, s := range v {
			collect(s, out, seen)
		}
	case []any:
		for _, s := range v {
			collect(s, out, seen)
		}
	case fmt.Stringer:
		collect(v.String(), out, seen)
	default:
		// Named string and slice types, e.g. type IDs []string.
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String:
			collect(rv.String(), out, seen)
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				collect(rv.Index(i).Interface(), out, seen)
			}
		}
	}
}

func split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Diff returns the identifiers to add (in desired but not previous) and to
// remove (in previous but not desired). Both inputs are normalised first and
// results keep the input order.
func Diff(desired, previous any) (toAdd, toRemove []string) {
	d := Normalize(desired)
	p := Normalize(previous)

	inPrev := make(map[string]struct{}, len(p))
	for _, id := range p {
		inPrev[id] = struct{}{}
	}
	inDesired := make(map[string]struct{}, len(d))
	for _, id := range d {
		inDesired[id] = struct{}{}
		if _, ok := inPrev[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range p {
		if _, ok := inDesired[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

// Contains reports whether id is present in ids.
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns ids with every occurrence of id removed.
func Without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
