package flights

import (
	"sort"
	"strings"
)

// Sort keys accepted by Sort; anything else falls back to SortByPrice.
const (
	SortByPrice     = "price"
	SortByDeparture = "departure_time"
	SortByArrival   = "arrival_time"
)

// Filter returns the offers matching the airline needle and price bounds.
// The airline match is a case-insensitive substring test against the airline
// name or the airline code; an empty needle matches everything. Each price
// bound is independently optional.
func Filter(offers []Offer, airline string, priceMin, priceMax *float64) []Offer {
	out := make([]Offer, 0, len(offers))
	needle := strings.ToLower(airline)
	for _, o := range offers {
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.Airline), needle) &&
			!strings.Contains(strings.ToLower(o.AirlineCode), needle) {
			continue
		}
		if priceMin != nil && o.Price < *priceMin {
			continue
		}
		if priceMax != nil && o.Price > *priceMax {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Sort orders offers in place by the given key. Time keys compare the raw
// timestamp strings (nil compares as empty), price compares numerically.
// The sort is stable, so equal keys keep their merge order. An unknown key
// falls back to price; any order other than "desc" means ascending.
func Sort(offers []Offer, sortBy, sortOrder string) {
	key := sortBy
	switch key {
	case SortByPrice, SortByDeparture, SortByArrival:
	default:
		key = SortByPrice
	}
	desc := sortOrder == "desc"
	sort.SliceStable(offers, func(i, j int) bool {
		c := compareOffers(offers[i], offers[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareOffers(a, b Offer, key string) int {
	switch key {
	case SortByDeparture:
		return strings.Compare(strVal(a.DepartureTime), strVal(b.DepartureTime))
	case SortByArrival:
		return strings.Compare(strVal(a.ArrivalTime), strVal(b.ArrivalTime))
	default:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
