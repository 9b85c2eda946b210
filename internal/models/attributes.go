package models

import (
	"sort"
	"strings"
)

// Color is the wine color; the raw value is the persisted form.
type Color string

const (
	ColorRed    Color = "Red"
	ColorWhite  Color = "White"
	ColorRose   Color = "Rosé"
	ColorOrange Color = "Orange"
	ColorOther  Color = "Other"
)

// AllColors lists colors in declaration order.
func AllColors() []Color {
	return []Color{ColorRed, ColorWhite, ColorRose, ColorOrange, ColorOther}
}

// ParseColor maps a raw string to a Color. Matching ignores case and
// accepts "Rose" for "Rosé".
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "rose") {
		return ColorRose, true
	}
	for _, c := range AllColors() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

func (c Color) Valid() bool {
	for _, known := range AllColors() {
		if c == known {
			return true
		}
	}
	return false
}

// Style is the wine style.
type Style string

const (
	StyleStill     Style = "Still"
	StyleSparkling Style = "Sparkling"
	StyleFortified Style = "Fortified"
)

// AllStyles lists styles in declaration order.
func AllStyles() []Style {
	return []Style{StyleStill, StyleSparkling, StyleFortified}
}

// ParseStyle maps a raw string to a Style, ignoring case.
func ParseStyle(s string) (Style, bool) {
	s = strings.TrimSpace(s)
	for _, st := range AllStyles() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s Style) Valid() bool {
	for _, st := range AllStyles() {
		if s == st {
			return true
		}
	}
	return false
}

// Sweetness is one sweetness level.
type Sweetness string

const (
	SweetnessDry          Sweetness = "Dry"
	SweetnessOffDry       Sweetness = "Off-Dry"
	SweetnessSweet        Sweetness = "Sweet"
	SweetnessDessertSweet Sweetness = "Dessert-Sweet"
)

// AllSweetness lists sweetness levels in declaration order.
func AllSweetness() []Sweetness {
	return []Sweetness{SweetnessDry, SweetnessOffDry, SweetnessSweet, SweetnessDessertSweet}
}

// ParseSweetness maps a raw string to a Sweetness, ignoring case.
func ParseSweetness(s string) (Sweetness, bool) {
	s = strings.TrimSpace(s)
	for _, sw := range AllSweetness() {
		if strings.EqualFold(s, string(sw)) {
			return sw, true
		}
	}
	return "", false
}

func (s Sweetness) Valid() bool {
	for _, sw := range AllSweetness() {
		if s == sw {
			return true
		}
	}
	return false
}

func (s Sweetness) order() int {
	for i, sw := range AllSweetness() {
		if s == sw {
			return i
		}
	}
	return len(AllSweetness())
}

// SweetnessSet is an unordered set of sweetness levels.
type SweetnessSet map[Sweetness]struct{}

func NewSweetnessSet(values ...Sweetness) SweetnessSet {
	set := make(SweetnessSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s SweetnessSet) Contains(v Sweetness) bool {
	_, ok := s[v]
	return ok
}

func (s SweetnessSet) Len() int { return len(s) }

// Add inserts v. s must be non-nil.
func (s SweetnessSet) Add(v Sweetness) { s[v] = struct{}{} }

func (s SweetnessSet) Remove(v Sweetness) { delete(s, v) }

// Toggle adds v when absent and removes it when present.
func (s SweetnessSet) Toggle(v Sweetness) {
	if s.Contains(v) {
		s.Remove(v)
		return
	}
	s.Add(v)
}

// Sorted returns the members in declaration order.
func (s SweetnessSet) Sorted() []Sweetness {
	out := make([]Sweetness, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].order() != out[j].order() {
			return out[i].order() < out[j].order()
		}
		return out[i] < out[j]
	})
	return out
}

// Equal reports set equality; nil and empty sets are equal.
func (s SweetnessSet) Equal(o SweetnessSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and o share at least one member.
func (s SweetnessSet) Intersects(o SweetnessSet) bool {
	for v := range s {
		if o.Contains(v) {
			return true
		}
	}
	return false
}

func (s SweetnessSet) Clone() SweetnessSet {
	out := make(SweetnessSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

func (s SweetnessSet) String() string {
	parts := make([]string, 0, len(s))
	for _, v := range s.Sorted() {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
