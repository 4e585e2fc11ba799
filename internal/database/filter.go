// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package database

import "strings"

// VisitFilter selects a page of visits. Search is matched case-insensitively
// as a substring of any searchable column. Limit and Offset are applied
// after ordering by timestamp DESC, id DESC.
type VisitFilter struct {
	Search string
	Limit  int
	Offset int
}

// searchColumns are OR-ed together when a search term is given.
var searchColumns = []string{
	"country",
	"state",
	"city",
	"browser",
	"os",
	"ip",
	"session_id",
}

// likeEscaper escapes ILIKE metacharacters so user input only ever matches
// literally. The escape character itself goes first.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an escaped ILIKE pattern.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// buildSearchClause returns a WHERE clause and its arguments for term. An
// empty term matches everything.
func buildSearchClause(term string) (string, []interface{}) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", nil
	}

	pattern := containsPattern(term)
	conditions := make([]string, 0, len(searchColumns))
	args := make([]interface{}, 0, len(searchColumns))
	for _, col := range searchColumns {
		conditions = append(conditions, col+` ILIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return " WHERE (" + strings.Join(conditions, " OR ") + ")", args
}
