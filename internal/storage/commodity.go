package storage

import (
	"fmt"
	"strings"
)

// Commodity identifies a type of stored good. Only the constants below are valid.
type Commodity string

const (
	Rice      Commodity = "RICE"
	Peas      Commodity = "PEAS"
	Buckwheat Commodity = "BUCKWHEAT"
	Bulgur    Commodity = "BULGUR"
	Millet    Commodity = "MILLET"
)

var commodities = []Commodity{Rice, Peas, Buckwheat, Bulgur, Millet}

// Commodities returns every known commodity in declaration order
func Commodities() []Commodity {
	out := make([]Commodity, len(commodities))
	copy(out, commodities)
	return out
}

// Valid reports whether c belongs to the commodity set
func (c Commodity) Valid() bool {
	for _, known := range commodities {
		if c == known {
			return true
		}
	}
	return false
}

func (c Commodity) String() string {
	return string(c)
}

// ParseCommodity resolves a label to a Commodity, ignoring case and surrounding space
func ParseCommodity(label string) (Commodity, error) {
	c := Commodity(strings.ToUpper(strings.TrimSpace(label)))
	if !c.Valid() {
		return "", &Error{
			Kind:    KindInvalidArgument,
			Op:      "parse",
			Message: fmt.Sprintf("unknown commodity %q", label),
		}
	}
	return c, nil
}
