// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "strconv"

// PaletteSize is the number of group colours a client cycles through.
//
// The last colour is reserved for chapters without a manuscript.
const PaletteSize = 8

// NoManuscriptTitle labels the bucket of loose chapters.
const NoManuscriptTitle = "No Manuscript"

// Group is the chapters of one manuscript.
type Group struct {
	Key          string     `json:"key"`
	ManuscriptID *int64     `json:"id_manuscript"`
	Title        string     `json:"title"`
	Palette      int        `json:"palette"`
	Chapters     []*Chapter `json:"chapters"`
}

/*
GroupChapters buckets chapters by manuscript.

Groups appear in the order their first chapter appears, and chapters keep
their input order inside a group. titles resolves manuscript names. A
reference to a manuscript missing from titles keeps its id as the title.
*/
func GroupChapters(chapters []*Chapter, titles map[int64]string) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)

	for _, chapter := range chapters {
		key := noManuscriptGroupID
		if chapter.ManuscriptID != nil {
			key = strconv.FormatInt(*chapter.ManuscriptID, 10)
		}

		position, ok := index[key]
		if !ok {
			position = len(groups)
			index[key] = position
			groups = append(groups, newGroup(key, chapter.ManuscriptID, titles))
		}
		groups[position].Chapters = append(groups[position].Chapters, chapter)
	}

	return groups
}

func newGroup(key string, manuscriptID *int64, titles map[int64]string) Group {
	if manuscriptID == nil {
		return Group{Key: key, Title: NoManuscriptTitle, Palette: PaletteSize - 1}
	}

	title, ok := titles[*manuscriptID]
	if !ok {
		title = "Manuscript #" + key
	}
	return Group{
		Key:          key,
		ManuscriptID: manuscriptID,
		Title:        title,
		Palette:      PaletteIndex(*manuscriptID),
	}
}

// PaletteIndex returns the stable colour slot of a manuscript.
func PaletteIndex(manuscriptID int64) int {
	slot := manuscriptID % (PaletteSize - 1)
	if slot < 0 {
		slot += PaletteSize - 1
	}
	return int(slot)
}
