package product

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

type Unit int

const (
	UnknownUnit Unit = iota
	Piece
	Kg
	Dozen
)

type Category int

const (
	UnknownCategory Category = iota
	Bread
	Rolls
	Pretzel
	Pastry
	Cake
	Seasonal
)

func getUnitStrings() map[Unit]string {
	return map[Unit]string{
		UnknownUnit: "UNKNOWN",
		Piece:       "PIECE",
		Kg:          "KG",
		Dozen:       "DOZEN",
	}
}

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		UnknownCategory: "UNKNOWN",
		Bread:           "BREAD",
		Rolls:           "ROLLS",
		Pretzel:         "PRETZEL",
		Pastry:          "PASTRY",
		Cake:            "CAKE",
		Seasonal:        "SEASONAL",
	}
}

// ParseUnit maps a wire name to a Unit. An empty string yields the default PIECE.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Piece, nil
	}
	for u, str := range getUnitStrings() {
		if u != UnknownUnit && str == name {
			return u, nil
		}
	}
	return UnknownUnit, errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not a valid unit", s))
}

// ParseCategory maps a wire name to a Category. An empty string yields the default BREAD.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Bread, nil
	}
	for c, str := range getCategoryStrings() {
		if c != UnknownCategory && str == name {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
}

func (u Unit) Validate() error {
	if u <= UnknownUnit || u > Dozen {
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%d is not a valid unit", u))
	}
	return nil
}

func (u Unit) String() string {
	if str, ok := getUnitStrings()[u]; ok {
		return str
	}
	return "UNKNOWN"
}

func (c Category) Validate() error {
	if c <= UnknownCategory || c > Seasonal {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}
