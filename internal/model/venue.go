package model

import (
	"fmt"
	"strings"
)

// Venue identifies the bar a record came from.
type Venue string

const (
	VenueBudapest Venue = "budapest"
	VenueLondon   Venue = "london"
	VenueNewYork  Venue = "new_york"
)

// Venues lists every known venue in load order.
var Venues = []Venue{VenueBudapest, VenueLondon, VenueNewYork}

// ParseVenue accepts the canonical tag and the spaced/cased spellings seen in source files
// ("New York", "new york").
func ParseVenue(s string) (Venue, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	for _, v := range Venues {
		if string(v) == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown venue %q", s)
}
