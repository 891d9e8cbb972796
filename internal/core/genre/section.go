// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "strings"

// Section labels, in display order.
const (
	SectionFiction    = "Fiction"
	SectionNonFiction = "Non-Fiction"
	SectionOther      = "Other"
)

// Section is one option group of the genre picker.
type Section struct {
	Label  string   `json:"label"`
	Genres []*Genre `json:"genres"`
}

// SectionOf maps a free-form category onto a picker section.
//
// Genres with a blank category belong to no section and return "".
func SectionOf(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "":
		return ""
	case "fiction":
		return SectionFiction
	case "non-fiction", "non fiction":
		return SectionNonFiction
	default:
		return SectionOther
	}
}

// Sections splits genres into the picker sections, dropping empty ones.
func Sections(genres []*Genre) []Section {
	buckets := map[string][]*Genre{}
	for _, genre := range genres {
		if label := SectionOf(genre.Category); label != "" {
			buckets[label] = append(buckets[label], genre)
		}
	}

	sections := make([]Section, 0, 3)
	for _, label := range []string{SectionFiction, SectionNonFiction, SectionOther} {
		if len(buckets[label]) > 0 {
			sections = append(sections, Section{Label: label, Genres: buckets[label]})
		}
	}
	return sections
}
