package domain

import "strings"

// unitedStates is the country reported for a "City, <US state>" location.
const unitedStates = "United States"

// LocationTriple is a location split into its administrative parts.
type LocationTriple struct {
	City    *string
	State   *string
	Country *string
}

// ResolveLocation splits a freeform location string using the gazetteer.
//
//	"Moscow, Russia"            -> (Moscow, nil, Russia)
//	"Miami, FL"                 -> (Miami, FL, United States)
//	"Le Bourget, Paris, France" -> (Le Bourget, Paris, France)
//	"Atlantic Ocean"            -> (Atlantic Ocean, nil, nil)
//	"Off the coast of Japan"    -> (nil, nil, Off the coast of Japan)
//
// Matching is case-sensitive. Empty input yields an empty triple.
func ResolveLocation(raw string, g *Gazetteer) LocationTriple {
	s := strings.TrimSpace(raw)
	if s == "" {
		return LocationTriple{}
	}

	if !strings.Contains(s, ",") {
		if g.IsCountry(s) || g.ContainsCountry(s) {
			return LocationTriple{Country: strPtr(s)}
		}
		return LocationTriple{City: strPtr(s)}
	}

	parts := splitNonEmpty(s)
	switch len(parts) {
	case 0:
		return LocationTriple{}
	case 1:
		return LocationTriple{City: strPtr(parts[0])}
	case 2:
		a, b := parts[0], parts[1]
		switch {
		case g.IsCountry(b):
			return LocationTriple{City: strPtr(a), Country: strPtr(b)}
		case g.IsUSState(b):
			return LocationTriple{City: strPtr(a), State: strPtr(b), Country: strPtr(unitedStates)}
		case g.ContainsCountry(b):
			return LocationTriple{City: strPtr(a), Country: strPtr(b)}
		default:
			return LocationTriple{City: strPtr(a), State: strPtr(b)}
		}
	default:
		return LocationTriple{
			City:    strPtr(parts[0]),
			State:   strPtr(parts[1]),
			Country: strPtr(parts[len(parts)-1]),
		}
	}
}

func splitNonEmpty(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func strPtr(s string) *string { return &s }
