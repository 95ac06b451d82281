package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/DavidPeleg6/recipe-creator/internal/database"
	"github.com/DavidPeleg6/recipe-creator/internal/guardrails"
)

// QueryRow is a single result row as ordered column-name-to-value pairs
type QueryRow map[string]interface{}

// QueryResult is the uniform outcome of a guarded SQL execution. Denials and
// database errors are data, not raised errors: Success is false and Error
// carries the reason.
type QueryResult struct {
	Success      bool       `json:"success"`
	Data         []QueryRow `json:"data,omitempty"`
	RowCount     int        `json:"row_count,omitempty"`
	AffectedRows int64      `json:"affected_rows,omitempty"`
	Message      string     `json:"message"`
	Error        string     `json:"error,omitempty"`
}

// ExecutorOptions is the policy configuration for the guarded executor
type ExecutorOptions struct {
	// TableName is the only table statements may target
	TableName string
	// EnforceTable rejects statements that never mention TableName
	EnforceTable bool
	// DefaultRowLimit caps SELECT results when the caller passes no limit
	DefaultRowLimit int
	// MaxRowLimit bounds caller-supplied limits
	MaxRowLimit int
}

// DefaultExecutorOptions matches the policy the agent prompt documents
func DefaultExecutorOptions() ExecutorOptions {
	return ExecutorOptions{
		TableName:       "saved_recipes",
		EnforceTable:    true,
		DefaultRowLimit: 50,
		MaxRowLimit:     1000,
	}
}

// SQLExecutor turns raw agent-written SQL into tabular results or mutation
// summaries, with guardrails always applied before any database contact.
// Every invocation acquires its own scoped session from the factory.
type SQLExecutor struct {
	sessions database.SessionFactory
	opts     ExecutorOptions
}

// NewSQLExecutor creates a guarded executor over a session factory
func NewSQLExecutor(sessions database.SessionFactory, opts ExecutorOptions) *SQLExecutor {
	if opts.TableName == "" {
		opts.TableName = "saved_recipes"
	}
	if opts.DefaultRowLimit <= 0 {
		opts.DefaultRowLimit = 50
	}
	if opts.MaxRowLimit <= 0 {
		opts.MaxRowLimit = 1000
	}
	return &SQLExecutor{sessions: sessions, opts: opts}
}

func failure(reason string) QueryResult {
	return QueryResult{
		Success: false,
		Error:   reason,
		Message: fmt.Sprintf("Query blocked: %s", reason),
	}
}

// Execute validates, rewrites and runs a single SELECT or UPDATE statement.
// Policy violations and database errors are both returned as structured
// failures; no error ever propagates to the caller.
func (e *SQLExecutor) Execute(ctx context.Context, query string, rowLimit int) QueryResult {
	trimmed := strings.TrimSpace(query)
	upper := strings.ToUpper(trimmed)

	// Statement-shape and table checks happen before guardrail validation
	// and before any session is acquired.
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "UPDATE") {
		return failure("only SELECT and UPDATE queries are allowed")
	}
	if e.opts.EnforceTable && !strings.Contains(upper, strings.ToUpper(e.opts.TableName)) {
		return failure(fmt.Sprintf("queries must target the '%s' table", e.opts.TableName))
	}

	if ok, reason := guardrails.ValidateSQL(trimmed); !ok {
		log.Printf("[SQLExecutor] query blocked by guardrails: %s", reason)
		return failure(reason)
	}

	if guardrails.IsReadOnly(trimmed) {
		return e.executeSelect(ctx, guardrails.InjectSoftDeleteFilter(trimmed), e.clampLimit(rowLimit))
	}
	return e.executeUpdate(ctx, trimmed)
}

func (e *SQLExecutor) clampLimit(rowLimit int) int {
	if rowLimit <= 0 {
		return e.opts.DefaultRowLimit
	}
	if rowLimit > e.opts.MaxRowLimit {
		return e.opts.MaxRowLimit
	}
	return rowLimit
}

func (e *SQLExecutor) executeSelect(ctx context.Context, query string, limit int) QueryResult {
	session := e.sessions(ctx)

	rows, err := session.Raw(query).Rows()
	if err != nil {
		log.Printf("[SQLExecutor] SELECT failed: %v", err)
		return QueryResult{Success: false, Error: err.Error(), Message: fmt.Sprintf("Query failed: %s", err.Error())}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{Success: false, Error: err.Error(), Message: fmt.Sprintf("Query failed: %s", err.Error())}
	}

	var data []QueryRow
	extra := 0
	for rows.Next() {
		if len(data) >= limit {
			extra++
			continue
		}

		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return QueryResult{Success: false, Error: err.Error(), Message: fmt.Sprintf("Query failed: %s", err.Error())}
		}

		row := make(QueryRow, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{Success: false, Error: err.Error(), Message: fmt.Sprintf("Query failed: %s", err.Error())}
	}

	message := fmt.Sprintf("Found %d recipe(s)", len(data)+extra)
	if extra > 0 {
		message = fmt.Sprintf("%s (showing first %d, +%d more rows)", message, limit, extra)
	}

	e.touchLastAccessed(session, data)

	log.Printf("[SQLExecutor] SELECT returned %d rows", len(data))
	return QueryResult{
		Success:  true,
		Data:     data,
		RowCount: len(data),
		Message:  message,
	}
}

func (e *SQLExecutor) executeUpdate(ctx context.Context, query string) QueryResult {
	session := e.sessions(ctx)

	var affected int64
	err := session.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(query)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		log.Printf("[SQLExecutor] UPDATE failed: %v", err)
		return QueryResult{Success: false, Error: err.Error(), Message: fmt.Sprintf("Query failed: %s", err.Error())}
	}

	log.Printf("[SQLExecutor] UPDATE affected %d rows", affected)
	return QueryResult{
		Success:      true,
		AffectedRows: affected,
		Message:      fmt.Sprintf("Updated %d row(s)", affected),
	}
}

// touchLastAccessed bumps last_accessed_at for rows a SELECT returned.
// Best-effort: errors are logged and dropped.
func (e *SQLExecutor) touchLastAccessed(session *gorm.DB, data []QueryRow) {
	var ids []string
	for _, row := range data {
		if id, ok := row["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}

	stmt := fmt.Sprintf("UPDATE %s SET last_accessed_at = ? WHERE id IN ?", e.opts.TableName)
	if err := session.Exec(stmt, time.Now().UTC(), ids).Error; err != nil {
		log.Printf("[SQLExecutor] last_accessed_at touch failed: %v", err)
	}
}
