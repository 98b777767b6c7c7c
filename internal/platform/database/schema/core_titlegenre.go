// Copyright (c) 2026 Kritika. All rights reserved.

package schema

// CoreTitleGenreTable represents the 'core.titlegenre' junction table
type CoreTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CoreTitleGenre is the schema definition for core.titlegenre
var CoreTitleGenre = CoreTitleGenreTable{
	Table:   "core.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}

func (t CoreTitleGenreTable) Columns() []string {
	return []string{t.TitleID, t.GenreID}
}
