package store

import (
	"sort"
	"time"
)

// DateGroup is the saved cards of one calendar day
type DateGroup struct {
	Key   string
	Cards []SavedCard
}

// Group sorts cards newest first and groups them by day, formatted with
// layout in loc. Groups keep the order of their newest card.
func Group(cards []SavedCard, layout string, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.Local
	}
	sorted := make([]SavedCard, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	var groups []DateGroup
	pos := map[string]int{}
	for _, c := range sorted {
		key := c.Time.In(loc).Format(layout)
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, DateGroup{Key: key})
		}
		groups[i].Cards = append(groups[i].Cards, c)
	}
	return groups
}

// Remove returns cards without the one with the given id
func Remove(cards []SavedCard, id string) []SavedCard {
	out := make([]SavedCard, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
