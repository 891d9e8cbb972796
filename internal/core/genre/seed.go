// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalogue is the layout of the genre seed file.
//
//	categories:
//	  - name: Fiction
//	    genres: [Fantasy, Science Fiction]
type Catalogue struct {
	Categories []struct {
		Name   string   `yaml:"name"`
		Genres []string `yaml:"genres"`
	} `yaml:"categories"`
}

// Entries flattens the catalogue into trimmed (name, category) pairs, skipping blanks.
func (catalogue Catalogue) Entries() []Genre {
	entries := make([]Genre, 0)
	for _, category := range catalogue.Categories {
		categoryName := strings.TrimSpace(category.Name)
		for _, name := range category.Genres {
			if name = strings.TrimSpace(name); name != "" {
				entries = append(entries, Genre{Name: name, Category: categoryName})
			}
		}
	}
	return entries
}

// LoadCatalogue reads and parses a YAML seed file.
func LoadCatalogue(path string) (Catalogue, error) {
	var catalogue Catalogue

	content, err := os.ReadFile(path)
	if err != nil {
		return catalogue, fmt.Errorf("read genre seed: %w", err)
	}
	if err := yaml.Unmarshal(content, &catalogue); err != nil {
		return catalogue, fmt.Errorf("parse genre seed %s: %w", path, err)
	}
	return catalogue, nil
}
