// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character manages the cast of a writer's manuscripts.

A character carries a name, an optional age and a long tail of optional
descriptive text used by the character sheet.
*/
package character

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/normalize"
)

// # Storage Layout

const (
	TableName = "characters"

	ColumnID           = "id_character"
	ColumnName         = "name"
	ColumnAge          = "age"
	ColumnManuscriptID = "id_manuscript"
	ColumnDateCreated  = "date_created"

	ColumnBiography          = "biography"
	ColumnBirth              = "birth"
	ColumnBuild              = "build"
	ColumnExternalMotivation = "external_motivation"
	ColumnEyeColor           = "eye_color"
	ColumnEyeShape           = "eye_shape"
	ColumnFearsPhobias       = "fears_phobias"
	ColumnFlaw               = "flaw"
	ColumnHairColor          = "hair_color"
	ColumnHairStyle          = "hair_style"
	ColumnHeight             = "height"
	ColumnInternalMotivation = "internal_motivation"
	ColumnMotto              = "motto"
	ColumnNegativeTraits     = "negative_traits"
	ColumnOccupation         = "occupation"
	ColumnPersonalityType    = "personality_type"
	ColumnPicture            = "picture"
	ColumnPositiveTraits     = "positive_traits"
	ColumnQuirksMannerisms   = "quirks_mannerisms"
	ColumnRelationshipStatus = "relationship_status"
	ColumnRole               = "role"
	ColumnScars              = "scars"
	ColumnWeight             = "weight"
)

// FilterManuscript narrows a list to one manuscript's cast.
const FilterManuscript = "manuscript"

// Schema describes the collection for key-generating clients.
var Schema = table.Schema{Name: TableName, Key: ColumnID, Stamps: []string{ColumnDateCreated}}

// # Entity

// Profile is the optional descriptive text of a character.
type Profile struct {
	Biography          *string `json:"biography"`
	Birth              *string `json:"birth"`
	Build              *string `json:"build"`
	ExternalMotivation *string `json:"external_motivation"`
	EyeColor           *string `json:"eye_color"`
	EyeShape           *string `json:"eye_shape"`
	FearsPhobias       *string `json:"fears_phobias"`
	Flaw               *string `json:"flaw"`
	HairColor          *string `json:"hair_color"`
	HairStyle          *string `json:"hair_style"`
	Height             *string `json:"height"`
	InternalMotivation *string `json:"internal_motivation"`
	Motto              *string `json:"motto"`
	NegativeTraits     *string `json:"negative_traits"`
	Occupation         *string `json:"occupation"`
	PersonalityType    *string `json:"personality_type"`
	Picture            *string `json:"picture"`
	PositiveTraits     *string `json:"positive_traits"`
	QuirksMannerisms   *string `json:"quirks_mannerisms"`
	RelationshipStatus *string `json:"relationship_status"`
	Role               *string `json:"role"`
	Scars              *string `json:"scars"`
	Weight             *string `json:"weight"`
}

// fields pairs every profile column with the field that holds it.
func (p *Profile) fields() map[string]**string {
	return map[string]**string{
		ColumnBiography:          &p.Biography,
		ColumnBirth:              &p.Birth,
		ColumnBuild:              &p.Build,
		ColumnExternalMotivation: &p.ExternalMotivation,
		ColumnEyeColor:           &p.EyeColor,
		ColumnEyeShape:           &p.EyeShape,
		ColumnFearsPhobias:       &p.FearsPhobias,
		ColumnFlaw:               &p.Flaw,
		ColumnHairColor:          &p.HairColor,
		ColumnHairStyle:          &p.HairStyle,
		ColumnHeight:             &p.Height,
		ColumnInternalMotivation: &p.InternalMotivation,
		ColumnMotto:              &p.Motto,
		ColumnNegativeTraits:     &p.NegativeTraits,
		ColumnOccupation:         &p.Occupation,
		ColumnPersonalityType:    &p.PersonalityType,
		ColumnPicture:            &p.Picture,
		ColumnPositiveTraits:     &p.PositiveTraits,
		ColumnQuirksMannerisms:   &p.QuirksMannerisms,
		ColumnRelationshipStatus: &p.RelationshipStatus,
		ColumnRole:               &p.Role,
		ColumnScars:              &p.Scars,
		ColumnWeight:             &p.Weight,
	}
}

// clean trims every field and drops the blank ones.
func (p Profile) clean() Profile {
	for _, field := range p.fields() {
		*field = normalize.CleanOptional(*field)
	}
	return p
}

// Character is one member of a cast.
type Character struct {
	ID           int64      `json:"id_character"`
	Name         string     `json:"name"`
	Age          *int       `json:"age"`
	ManuscriptID *int64     `json:"id_manuscript"`
	UserID       string     `json:"id_user"`
	CreatedAt    *time.Time `json:"date_created"`
	Profile
}

// Initials returns the avatar letters for the character's name.
func (c *Character) Initials() string {
	return normalize.Initials(c.Name)
}

// Input is the create/update payload.
type Input struct {
	Name         string   `json:"name"`
	Age          *float64 `json:"age"`
	ManuscriptID *int64   `json:"id_manuscript"`
	Profile
}

// # Hydration

func fromRow(row table.Row) *Character {
	character := &Character{
		ID:           row.Int64(ColumnID),
		Name:         row.String(ColumnName),
		Age:          row.IntPtr(ColumnAge),
		ManuscriptID: row.Int64Ptr(ColumnManuscriptID),
		UserID:       row.String(table.OwnerColumn),
		CreatedAt:    row.TimePtr(ColumnDateCreated),
	}
	for column, field := range character.fields() {
		*field = row.StringPtr(column)
	}
	return character
}

func toRow(c *Character) table.Row {
	row := table.Row{
		ColumnName:         c.Name,
		ColumnAge:          table.Opt(c.Age),
		ColumnManuscriptID: table.Opt(c.ManuscriptID),
	}
	for column, field := range c.fields() {
		row[column] = table.Opt(*field)
	}
	return row
}
