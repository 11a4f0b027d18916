// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AppStateTable represents the 'app.state' table holding persisted store documents
type AppStateTable struct {
	Table     string
	Key       string
	Document  string
	UpdatedAt string
}

// AppState is the schema definition for app.state
var AppState = AppStateTable{
	Table:     "app.state",
	Key:       "statekey",
	Document:  "document",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t AppStateTable) Columns() []string {
	return []string{t.Key, t.Document, t.UpdatedAt}
}
