// Package models defines the FoodFlow entity types (FoodItem, User and
// Business) together with the loosely-typed raw record forms that
// appear in the persisted document and the rules for resolving them
// into canonical typed values.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FoodItem is a single surplus-food listing. ID and BusinessID are
// opaque identifiers assigned once at creation; Expiry is an absolute
// timestamp.
type FoodItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Weight     float64   `json:"weight"`
	Distance   string    `json:"distance"`
	BusinessID string    `json:"business_id"`
	Expiry     time.Time `json:"expiry"`
}

// NewFoodItem constructs a FoodItem with a fresh id. The expiry is
// resolved against now; construction never fails (see ExpirySpec).
func NewFoodItem(name, category string, price, weight float64, distance, businessID string, exp ExpirySpec, now time.Time) FoodItem {
	return FoodItem{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   category,
		Price:      price,
		Weight:     weight,
		Distance:   distance,
		BusinessID: businessID,
		Expiry:     exp.Resolve(now),
	}
}

// expiryLayouts are the timestamp shapes accepted on load. The first is
// what this program writes; the rest cover documents written by earlier
// versions of the application, which used local ISO-8601 timestamps
// without a zone offset.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseExpiry(s string) (time.Time, bool) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type expiryKind int

const (
	expiryAt expiryKind = iota
	expiryISO
	expiryHours
)

// ExpirySpec is the tagged union of the three forms an expiry can be
// given in: an already-parsed timestamp, an ISO-8601 string, or an
// hours-from-now offset. Resolving a spec never fails: an unparsable
// string falls back to "now". Callers that need to detect the fallback
// use ResolveStrict.
type ExpirySpec struct {
	kind  expiryKind
	at    time.Time
	iso   string
	hours float64
}

// ExpiryAt wraps an already-parsed timestamp.
func ExpiryAt(t time.Time) ExpirySpec { return ExpirySpec{kind: expiryAt, at: t} }

// ExpiryISO wraps an ISO-8601 timestamp string.
func ExpiryISO(s string) ExpirySpec { return ExpirySpec{kind: expiryISO, iso: s} }

// ExpiryIn wraps an hours-from-now offset.
func ExpiryIn(hours float64) ExpirySpec { return ExpirySpec{kind: expiryHours, hours: hours} }

// Resolve converts the spec into an absolute timestamp relative to now.
func (e ExpirySpec) Resolve(now time.Time) time.Time {
	t, _ := e.ResolveStrict(now)
	return t
}

// ResolveStrict resolves the spec and additionally reports whether the
// value was usable as given. ok is false only for an ISO string that
// did not parse, in which case the returned time is the fallback
// (now plus the hours offset, which is zero unless set via raw decode).
func (e ExpirySpec) ResolveStrict(now time.Time) (time.Time, bool) {
	switch e.kind {
	case expiryAt:
		return e.at, true
	case expiryISO:
		if t, ok := parseExpiry(e.iso); ok {
			return t, true
		}
		return now.Add(hoursToDuration(e.hours)), false
	default:
		return now.Add(hoursToDuration(e.hours)), true
	}
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// RawFoodItem is the loosely-typed wire form of a FoodItem. Expiry is
// kept raw because persisted documents may carry it as a timestamp
// string or (from hand-edited files) a numeric hours offset; Hours is
// the constructor-era offset some old records carried alongside a
// missing expiry.
type RawFoodItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      float64         `json:"price"`
	Weight     float64         `json:"weight"`
	Distance   string          `json:"distance"`
	BusinessID string          `json:"business_id"`
	Expiry     json.RawMessage `json:"expiry"`
	Hours      float64         `json:"hours"`
}

// Resolve converts a raw record into a canonical FoodItem. A missing id
// gets a fresh one; a missing or unparsable expiry falls back to now
// (plus the Hours offset if present). The second return reports whether
// the lenient expiry fallback was taken, so callers can log it.
func (r RawFoodItem) Resolve(now time.Time) (FoodItem, bool) {
	spec, ok := r.expirySpec()

	item := FoodItem{
		ID:         r.ID,
		Name:       r.Name,
		Category:   r.Category,
		Price:      r.Price,
		Weight:     r.Weight,
		Distance:   r.Distance,
		BusinessID: r.BusinessID,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	var parsed bool
	item.Expiry, parsed = spec.ResolveStrict(now)
	return item, ok && parsed
}

func (r RawFoodItem) expirySpec() (ExpirySpec, bool) {
	if len(r.Expiry) == 0 {
		return ExpirySpec{kind: expiryHours, hours: r.Hours}, true
	}
	var s string
	if err := json.Unmarshal(r.Expiry, &s); err == nil {
		return ExpirySpec{kind: expiryISO, iso: s, hours: r.Hours}, true
	}
	var hours float64
	if err := json.Unmarshal(r.Expiry, &hours); err == nil {
		return ExpirySpec{kind: expiryHours, hours: hours}, true
	}
	// unrecognized shape, fall back to now
	return ExpirySpec{kind: expiryHours, hours: r.Hours}, false
}

// resolveItems resolves a slice of raw item records, dropping nothing:
// individual items always resolve (the expiry fallback guarantees it).
// The returned count is how many needed the lenient fallback.
func resolveItems(raw []RawFoodItem, now time.Time) ([]FoodItem, int) {
	items := make([]FoodItem, 0, len(raw))
	fallbacks := 0
	for _, r := range raw {
		item, ok := r.Resolve(now)
		if !ok {
			fallbacks++
		}
		items = append(items, item)
	}
	return items, fallbacks
}
