// Package entity contains the core business objects of the platform,
// each representing a unique, identifiable concept within the domain.
package entity

import "github.com/pkg/errors"

// BusinessType classifies a tenant business and determines which content
// sections, pages and booking widgets are meaningful for it.
type BusinessType string

const (
	TypeRestaurant  BusinessType = "restaurant"
	TypeHairdresser BusinessType = "hairdresser"
	TypeIndependent BusinessType = "independent"
	TypeRetail      BusinessType = "retail"
)

// BusinessTypes lists every supported type in registration order.
func BusinessTypes() []BusinessType {
	return []BusinessType{TypeRestaurant, TypeHairdresser, TypeIndependent, TypeRetail}
}

// ParseBusinessType converts a raw string into a BusinessType.
func ParseBusinessType(raw string) (BusinessType, error) {
	bt := BusinessType(raw)
	for _, known := range BusinessTypes() {
		if bt == known {
			return bt, nil
		}
	}

	return "", errors.Errorf("unknown business type: %q", raw)
}

func (t BusinessType) String() string {
	return string(t)
}
