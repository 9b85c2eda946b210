package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVintage is returned by ParseVintage for input that is neither
// empty, a non-vintage marker nor a positive year.
var ErrInvalidVintage = errors.New("invalid vintage")

type vintageKind uint8

const (
	vintageUnknown vintageKind = iota
	vintageNonVintage
	vintageYear
)

// Vintage is an optional harvest year. The zero value means "unknown";
// non-vintage (NV) is a distinct state, and neither is a year.
type Vintage struct {
	kind vintageKind
	year int
}

// NoVintage returns the unknown vintage.
func NoVintage() Vintage { return Vintage{} }

// NonVintageMarker returns the NV vintage.
func NonVintageMarker() Vintage { return Vintage{kind: vintageNonVintage} }

// VintageYear returns a vintage for year y. y must be positive.
func VintageYear(y int) (Vintage, error) {
	if y <= 0 {
		return Vintage{}, fmt.Errorf("%w: year %d", ErrInvalidVintage, y)
	}
	return Vintage{kind: vintageYear, year: y}, nil
}

// ParseVintage accepts "", "NV"/"N.V."/"non-vintage" and positive years.
func ParseVintage(s string) (Vintage, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return NoVintage(), nil
	case "nv", "n.v.", "n/v", "non-vintage", "nonvintage":
		return NonVintageMarker(), nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return Vintage{}, fmt.Errorf("%w: %q", ErrInvalidVintage, s)
	}
	return VintageYear(y)
}

// Year returns the year and true when the vintage carries one.
func (v Vintage) Year() (int, bool) {
	if v.kind != vintageYear {
		return 0, false
	}
	return v.year, true
}

func (v Vintage) IsNonVintage() bool { return v.kind == vintageNonVintage }

// IsSet reports whether the vintage is known (a year or NV).
func (v Vintage) IsSet() bool { return v.kind != vintageUnknown }

func (v Vintage) String() string {
	switch v.kind {
	case vintageNonVintage:
		return "NV"
	case vintageYear:
		return strconv.Itoa(v.year)
	default:
		return ""
	}
}
