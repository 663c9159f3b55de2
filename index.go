package cheatsheets

import "strconv"

// cardVariants is the number of card color classes in the stylesheet.
const cardVariants = 3

// RenderIndex lists docs as index cards in the order given. Cards cycle
// through card1, card2 and card3.
func RenderIndex(docs []Document) []IndexEntry {
	entries := make([]IndexEntry, len(docs))
	for i, d := range docs {
		entries[i] = IndexEntry{
			Slug:         d.Slug,
			Title:        d.Title,
			DisplayIndex: i,
			Card:         CardClass(i),
		}
	}
	return entries
}

// CardClass returns the card class for a 0-based display index.
func CardClass(i int) string {
	return "card" + strconv.Itoa(i%cardVariants+1)
}
