package compiler

import "strings"

// TypeNameForTable returns the IR type-def name for a user table: table
// T's row type is named "T"+lowercase(T).
func TypeNameForTable(table string) string {
	return "T" + strings.ToLower(table)
}

// RelationNameForTable returns the IR input-relation name for a user
// table: "R"+lowercase(T).
func RelationNameForTable(table string) string {
	return "R" + strings.ToLower(table)
}

