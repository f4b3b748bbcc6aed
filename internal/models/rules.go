package models

import (
	"fmt"
	"strings"
	"time"

	"diamond-exchange/internal/marketerrors"

	"github.com/shopspring/decimal"
)

// LockConsistent reports whether the lock flag agrees with an item status.
// Listed and memo items must be locked, available items must not be; sold and
// withdrawn items may be either.
func LockConsistent(status ItemStatus, locked bool) bool {
	switch status {
	case StatusListed, StatusOnMemo:
		return locked
	case StatusAvailable:
		return !locked
	case StatusSold, StatusNotAvailable:
		return true
	default:
		return false
	}
}

// AuctionPhase is derived from the clock and the auction window, never stored
type AuctionPhase string

const (
	PhasePending AuctionPhase = "PENDING"
	PhaseOpen    AuctionPhase = "OPEN"
	PhaseClosed  AuctionPhase = "CLOSED"
)

// PhaseAt computes the auction phase at now. Both window bounds are inclusive.
func PhaseAt(now, start, end time.Time) AuctionPhase {
	switch {
	case now.Before(start):
		return PhasePending
	case now.After(end):
		return PhaseClosed
	default:
		return PhaseOpen
	}
}

var (
	shapes    = set("ROUND", "PRINCESS", "CUSHION", "EMERALD", "OVAL", "RADIANT", "ASSCHER", "MARQUISE", "HEART", "PEAR")
	cuts      = set("EXCELLENT", "VERY_GOOD", "GOOD", "FAIR", "POOR")
	colors    = set("D", "E", "F", "G", "H", "I", "J", "K", "L", "M")
	clarities = set("FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1")

	minCarat = decimal.RequireFromString("0.01")
	maxCarat = decimal.NewFromInt(100)
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func checkEnum(field, value string, allowed map[string]struct{}) error {
	if _, ok := allowed[value]; !ok {
		return fmt.Errorf("%w - %s %q is not recognised", marketerrors.ErrValidation, field, value)
	}
	return nil
}

func checkCarat(carat decimal.Decimal) error {
	if carat.LessThan(minCarat) || carat.GreaterThan(maxCarat) {
		return fmt.Errorf("%w - carat must be between %s and %s", marketerrors.ErrValidation, minCarat, maxCarat)
	}
	return nil
}

// Normalize upper-cases the enumerated grading fields
func (g Grading) Normalize() Grading {
	g.Shape = strings.ToUpper(strings.TrimSpace(g.Shape))
	g.Cut = strings.ToUpper(strings.TrimSpace(g.Cut))
	g.Color = strings.ToUpper(strings.TrimSpace(g.Color))
	g.Clarity = strings.ToUpper(strings.TrimSpace(g.Clarity))
	return g
}

// Validate checks the grading against the accepted enumerations. Cut is optional.
func (g Grading) Validate() error {
	if err := checkEnum("shape", g.Shape, shapes); err != nil {
		return err
	}
	if g.Cut != "" {
		if err := checkEnum("cut", g.Cut, cuts); err != nil {
			return err
		}
	}
	if err := checkEnum("color", g.Color, colors); err != nil {
		return err
	}
	if err := checkEnum("clarity", g.Clarity, clarities); err != nil {
		return err
	}
	return checkCarat(g.Carat)
}

// Normalize upper-cases the enumerated fields and trims the free-text ones
func (s RequirementSpec) Normalize() RequirementSpec {
	s.Shape = strings.ToUpper(strings.TrimSpace(s.Shape))
	s.Color = strings.ToUpper(strings.TrimSpace(s.Color))
	s.Clarity = strings.ToUpper(strings.TrimSpace(s.Clarity))
	s.Lab = strings.TrimSpace(s.Lab)
	s.Location = strings.TrimSpace(s.Location)
	return s
}

// Validate checks the requirement spec against the accepted enumerations
func (s RequirementSpec) Validate() error {
	if err := checkEnum("shape", s.Shape, shapes); err != nil {
		return err
	}
	if err := checkEnum("color", s.Color, colors); err != nil {
		return err
	}
	if err := checkEnum("clarity", s.Clarity, clarities); err != nil {
		return err
	}
	return checkCarat(s.Carat)
}

// Key is a canonical string for the spec, stable across equal decimals
func (s RequirementSpec) Key() string {
	return strings.Join([]string{
		s.Shape,
		s.Carat.StringFixed(2),
		s.Color,
		s.Clarity,
		strings.ToUpper(s.Lab),
		strings.ToUpper(s.Location),
	}, "|")
}
