// Package guardrails validates and rewrites agent-written SQL before it
// reaches the database.
//
// The checks are deliberately textual (regex/substring, not an AST): the
// caller population is an LLM that emits simple single-clause statements, and
// a full SQL parser would trade auditability for completeness this system
// does not need. Known, accepted limitations: a keyword or WHERE token inside
// a string literal satisfies the checks, and visibility injection assumes at
// most one top-level WHERE per statement.
package guardrails

import (
	"regexp"
	"strings"
)

// forbiddenPattern pairs a compiled denylist pattern with its denial reason
type forbiddenPattern struct {
	re     *regexp.Regexp
	reason string
}

// Denylist is the union of destructive and schema-changing statements.
// DELETE is blocked in favor of soft deletion; INSERT is blocked because
// rows are only created through the save pipeline. First match wins.
var forbiddenPatterns = []forbiddenPattern{
	{regexp.MustCompile(`(?i)\bDROP\b`), "DROP statements are not allowed"},
	{regexp.MustCompile(`(?i)\bTRUNCATE\b`), "TRUNCATE statements are not allowed"},
	{regexp.MustCompile(`(?i)\bALTER\b`), "ALTER statements are not allowed"},
	{regexp.MustCompile(`(?i)\bCREATE\b`), "CREATE statements are not allowed"},
	{regexp.MustCompile(`(?i)\bGRANT\b`), "GRANT statements are not allowed"},
	{regexp.MustCompile(`(?i)\bREVOKE\b`), "REVOKE statements are not allowed"},
	{regexp.MustCompile(`(?i)\bDELETE\b`), "DELETE not allowed - use UPDATE SET is_deleted = true"},
	{regexp.MustCompile(`(?i)\bINSERT\b`), "INSERT statements are not allowed"},
}

var (
	updateRe    = regexp.MustCompile(`(?i)\bUPDATE\b`)
	whereRe     = regexp.MustCompile(`(?i)\bWHERE\b`)
	isDeletedRe = regexp.MustCompile(`(?i)\bIS_DELETED\b`)

	// Clauses that follow WHERE in a SELECT; the injected filter goes before
	// the first of these when the statement has no WHERE of its own.
	postWhereClauses = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bORDER\s+BY\b`),
		regexp.MustCompile(`(?i)\bLIMIT\b`),
		regexp.MustCompile(`(?i)\bGROUP\s+BY\b`),
	}
)

// ValidateSQL checks a query against the guardrails. It returns whether the
// query is allowed and, if not, a human-readable reason naming the violation.
func ValidateSQL(query string) (bool, string) {
	for _, p := range forbiddenPatterns {
		if p.re.MatchString(query) {
			return false, p.reason
		}
	}

	// UPDATE must have a WHERE clause. Textual check only: a WHERE inside a
	// string literal still passes.
	if updateRe.MatchString(query) && !whereRe.MatchString(query) {
		return false, "UPDATE statements must include a WHERE clause"
	}

	return true, ""
}

// InjectSoftDeleteFilter injects an `is_deleted = false` predicate into
// SELECT queries so soft-deleted rows are invisible by default.
//
// A query that already references is_deleted anywhere is returned unchanged:
// an explicit reference is taken as intent to override, e.g. listing deleted
// recipes for restoration. Non-SELECT queries are returned unchanged.
// The function is idempotent because the injected clause itself contains
// is_deleted.
func InjectSoftDeleteFilter(query string) string {
	if !IsReadOnly(query) {
		return query
	}

	if isDeletedRe.MatchString(query) {
		return query
	}

	// Insert right after the first WHERE, keeping the rest of the clause.
	if loc := whereRe.FindStringIndex(query); loc != nil {
		return query[:loc[0]] + "WHERE is_deleted = false AND " + query[loc[1]:]
	}

	// No WHERE: place a new clause before the first ORDER BY / LIMIT / GROUP BY.
	for _, clause := range postWhereClauses {
		if loc := clause.FindStringIndex(query); loc != nil {
			return strings.TrimSpace(query[:loc[0]] + "WHERE is_deleted = false " + query[loc[0]:])
		}
	}

	// Bare SELECT: append at the end, dropping a trailing terminator.
	trimmed := strings.TrimRight(strings.TrimSpace(query), ";")
	return trimmed + " WHERE is_deleted = false"
}

// IsReadOnly reports whether the query is a SELECT statement
func IsReadOnly(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT")
}
