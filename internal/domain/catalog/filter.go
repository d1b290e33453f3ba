package catalog

import "strings"

// raceUnsuitableKeywords marks product classes that have no place in an
// in-race plan: recovery and protein products digest too slowly and meal
// replacements are not consumable on the move.
var raceUnsuitableKeywords = []string{
	"recovery",
	"protein",
	"whey",
	"casein",
	"meal replacement",
	"weight gainer",
}

// FilterGlobal drops items unsuited for in-race consumption, regardless of
// strategy. The returned slice preserves catalog order.
func FilterGlobal(items []Item) []Item {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if isRaceUnsuitable(it) {
			continue
		}
		filtered = append(filtered, it)
	}
	return filtered
}

func isRaceUnsuitable(it Item) bool {
	name := strings.ToLower(it.Name)
	for _, kw := range raceUnsuitableKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// MatchesAnyPattern reports whether the item name contains any of the given
// patterns, case-insensitively. Used for strategy prefer/avoid lists.
func MatchesAnyPattern(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
