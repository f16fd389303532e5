package drive

import (
	"fmt"
	"strings"
	"time"
)

// EscapeQueryTerm escapes a user-supplied string for embedding in a Drive
// query-language string literal. Drive uses backslash escaping inside
// single-quoted literals, so backslashes must be doubled before quotes are
// escaped.
func EscapeQueryTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}

// SearchQuery builds the files.list query for a free-text search. The term
// matches file names everywhere, and file content where Drive indexes it
// (fullText covers Google-native documents). Trashed files are excluded.
func SearchQuery(term string) string {
	escaped := EscapeQueryTerm(term)
	return fmt.Sprintf("(name contains '%s' or fullText contains '%s') and trashed = false", escaped, escaped)
}

// RecentQuery builds the query and matching sort order for a recency
// listing. The cutoff is an absolute instant computed by the caller; mode
// selects which timestamp field is filtered and ordered on, so the most
// recent item comes first.
func RecentQuery(cutoff time.Time, mode RecentMode) (query, orderBy string) {
	field := "modifiedTime"
	if mode == ModeViewed {
		field = "viewedByMeTime"
	}
	ts := cutoff.UTC().Format(time.RFC3339)
	return fmt.Sprintf("%s >= '%s' and trashed = false", field, ts), field + " desc"
}

// FolderQuery builds the query for listing a folder's direct children.
// Callers must validate the folder ID first: an empty ID is never
// interpreted as the Drive root, since silently substituting root would
// leak results the caller did not ask for.
func FolderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed = false", EscapeQueryTerm(folderID))
}
