package models

import "strings"

// Tag is a normalized place label. Name is as entered, Slug is the
// canonical lookup key.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Slugify normalizes a tag name into its slug: lowercased, with
// everything except letters, digits, spaces and dashes stripped, and
// runs of whitespace collapsed into single dashes.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}

// SlugifyList splits a comma-separated tag string and slugifies each
// entry, dropping empties.
func SlugifyList(tags string) []string {
	if tags == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if slug := Slugify(t); slug != "" {
			out = append(out, slug)
		}
	}
	return out
}
