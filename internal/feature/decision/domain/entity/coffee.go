// Package entity defines the value types consumed and produced by the decision engine.
package entity

import "strings"

// Variety is the coffee species of a lot.
type Variety string

const (
	VarietyArabica Variety = "arabica"
	VarietyRobusta Variety = "robusta"
)

// ParseVariety normalizes user input into a Variety.
// Conilon is the Brazilian name for robusta. Anything unknown falls back to arabica,
// which is also the default the price source uses.
func ParseVariety(s string) Variety {
	switch normalize(s) {
	case "robusta", "conilon", "canephora":
		return VarietyRobusta
	default:
		return VarietyArabica
	}
}

// LookupVariety is the strict form of ParseVariety: it reports false for anything
// that is not a known name instead of falling back to arabica.
func LookupVariety(s string) (Variety, bool) {
	switch normalize(s) {
	case "arabica", "arábica":
		return VarietyArabica, true
	case "robusta", "conilon", "canephora":
		return VarietyRobusta, true
	}
	return "", false
}

// CoffeeState is the physical state the lot is stored in.
type CoffeeState string

const (
	StateGreen       CoffeeState = "green"
	StateRoasted     CoffeeState = "roasted"
	StateGround      CoffeeState = "ground"
	StateUnspecified CoffeeState = "unspecified"
)

// ParseCoffeeState accepts both English and Portuguese labels (verde, torrado, moído).
func ParseCoffeeState(s string) CoffeeState {
	switch normalize(s) {
	case "green", "verde", "cru", "raw":
		return StateGreen
	case "roasted", "torrado":
		return StateRoasted
	case "ground", "moido", "moído":
		return StateGround
	default:
		return StateUnspecified
	}
}

// IsProcessed reports whether the lot is roasted or ground and therefore perishable.
func (s CoffeeState) IsProcessed() bool {
	return s == StateRoasted || s == StateGround
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
