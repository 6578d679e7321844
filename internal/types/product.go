package types

import (
	"fmt"
	"math"
)

// Mode selects the optimization strategy for a shopping list.
type Mode string

const (
	// ModeConvenience only considers baskets from a single store.
	ModeConvenience Mode = "comodita"
	// ModeSavings additionally considers splitting the list across two stores.
	ModeSavings Mode = "risparmio"
)

// ParseMode validates a mode string. Empty input returns def.
func ParseMode(s string, def Mode) (Mode, error) {
	switch Mode(s) {
	case "":
		return def, nil
	case ModeConvenience, ModeSavings:
		return Mode(s), nil
	default:
		return "", ErrInvalidRequest{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s)}
	}
}

// Position is the caller's location for one request.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks coordinate ranges. NaN and infinities are rejected.
func (p Position) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidRequest{Field: "position.latitude", Reason: "must be between -90 and 90"}
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidRequest{Field: "position.longitude", Reason: "must be between -180 and 180"}
	}
	return nil
}

// Localization identifies the store a product is sold at.
type Localization struct {
	Grocery string  `json:"grocery"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ProductMatch is one hit returned by the search backend.
type ProductMatch struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	FullName     string       `json:"full_name"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	Discount     *float64     `json:"discount"`
	Localization Localization `json:"localization"`
	Distance     *float64     `json:"distance"`
}

// StoreID returns the store identifier of the match.
func (p ProductMatch) StoreID() string {
	return p.Localization.Grocery
}

// WithDistance returns a copy of p with the distance set.
func (p ProductMatch) WithDistance(km float64) ProductMatch {
	p.Distance = &km
	return p
}

// ErrInvalidRequest is returned for malformed input before any backend call.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}
