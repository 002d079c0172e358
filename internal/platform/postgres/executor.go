package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/metrics"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/redact"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// DefaultQueryTimeout bounds a statement when no timeout is configured.
const DefaultQueryTimeout = 15 * time.Second

// SQLType is the declared column type of a bound value. Types are NOT NULL
// unless marked with Null.
type SQLType struct {
	Name     string
	Length   int // 0 means unbounded
	Nullable bool
}

// Char is a fixed-length text column.
func Char(n int) SQLType { return SQLType{Name: "char", Length: n} }

// VarChar is a variable-length text column with a maximum width.
func VarChar(n int) SQLType { return SQLType{Name: "varchar", Length: n} }

// Text is an unbounded text column.
var Text = SQLType{Name: "text"}

// Null returns a copy of t that also accepts nil.
func (t SQLType) Null() SQLType {
	t.Nullable = true
	return t
}

// String renders the type the way it is declared in DDL.
func (t SQLType) String() string {
	name := t.Name
	if t.Length > 0 {
		name = fmt.Sprintf("%s(%d)", t.Name, t.Length)
	}
	if !t.Nullable {
		return name
	}
	return name + " null"
}

// check rejects values that the column would coerce or truncate.
func (t SQLType) check(name string, value any) error {
	switch v := value.(type) {
	case nil:
		if !t.Nullable {
			return domain.NewValidationError(name, fmt.Sprintf("must not be null for %s", t), domain.ErrEmptyField)
		}
		return nil
	case string:
		if t.Length > 0 && utf8.RuneCountInString(v) > t.Length {
			return domain.NewValidationError(name, fmt.Sprintf("exceeds %s", t), domain.ErrFieldTooLong)
		}
		return nil
	default:
		return domain.NewValidationError(name, fmt.Sprintf("must be text for %s, got %T", t, value), domain.ErrInvalidType)
	}
}

// Bind is one typed value for a named placeholder.
type Bind struct {
	Type  SQLType
	Value any
}

// Bindings maps placeholder names (without the @) to typed values.
type Bindings map[string]Bind

// Row is one result row keyed by column name.
type Row map[string]any

// String returns the text value of column, or "" for NULL or a missing column.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// RowSet is an ordered sequence of rows, in the order the store returned them.
type RowSet []Row

// Executor runs parameterized statements. User-supplied values only ever
// travel as bound parameters; the statement text is fixed by the caller.
type Executor struct {
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewExecutor creates an Executor that bounds every statement by timeout.
// A non-positive timeout falls back to DefaultQueryTimeout; nil logger and
// metrics are allowed.
func NewExecutor(timeout time.Duration, logger *slog.Logger, m *metrics.Collector) *Executor {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		timeout: timeout,
		logger:  logger.With(slog.String("component", "query_executor")),
		metrics: m,
	}
}

// Query executes a statement that returns rows.
func (e *Executor) Query(
	ctx context.Context,
	db store.DBTX,
	operation, statement string,
	binds Bindings,
) (RowSet, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)
	start := time.Now()

	query, args, err := compile(statement, binds)
	if err != nil {
		return nil, e.fail(ctx, log, operation, start, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, e.fail(ctx, log, operation, start, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", redact.Error(err)))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, e.fail(ctx, log, operation, start, err)
	}

	result := RowSet{}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, e.fail(ctx, log, operation, start, err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, e.fail(ctx, log, operation, start, err)
	}

	e.metrics.RecordQuery(operation, "ok", time.Since(start))
	log.Debug("query executed",
		slog.String("operation", operation),
		slog.Int("rows", len(result)),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

// Exec executes a statement that does not return rows and reports the number
// of rows it affected. Zero is a valid result.
func (e *Executor) Exec(
	ctx context.Context,
	db store.DBTX,
	operation, statement string,
	binds Bindings,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)
	start := time.Now()

	query, args, err := compile(statement, binds)
	if err != nil {
		return 0, e.fail(ctx, log, operation, start, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, e.fail(ctx, log, operation, start, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, e.fail(ctx, log, operation, start, err)
	}

	e.metrics.RecordQuery(operation, "ok", time.Since(start))
	log.Debug("statement executed",
		slog.String("operation", operation),
		slog.Int64("rows_affected", affected),
		slog.Duration("duration", time.Since(start)))
	return affected, nil
}

// fail maps, logs and counts a failed execution.
func (e *Executor) fail(
	ctx context.Context,
	log *slog.Logger,
	operation string,
	start time.Time,
	err error,
) error {
	// Drivers report an expired statement context with their own error text.
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	mapped := MapError(operation, err)

	outcome := "query_error"
	level := slog.LevelError
	switch {
	case errors.Is(mapped, domain.ErrValidation):
		outcome = "invalid"
		level = slog.LevelWarn
	case errors.Is(mapped, store.ErrConnection):
		outcome = "connection_error"
	}
	e.metrics.RecordQuery(operation, outcome, time.Since(start))

	log.LogAttrs(ctx, level, "statement failed",
		slog.String("operation", operation),
		slog.String("outcome", outcome),
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.Duration("duration", time.Since(start)))
	return mapped
}

// compile rewrites @name placeholders to positional $n parameters and returns
// the matching argument list. Placeholders inside quoted literals or quoted
// identifiers are left alone, and a name used twice maps to one parameter.
// Every placeholder must have a binding and every binding must be used.
func compile(statement string, binds Bindings) (string, []any, error) {
	var (
		b       strings.Builder
		args    []any
		indexes = make(map[string]int, len(binds))
		quote   byte
	)
	b.Grow(len(statement))

	for i := 0; i < len(statement); i++ {
		c := statement[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		if c == '\'' || c == '"' {
			quote = c
			b.WriteByte(c)
			continue
		}

		if c != '@' || i+1 >= len(statement) || !isIdentStart(statement[i+1]) {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(statement) && isIdentPart(statement[j]) {
			j++
		}
		name := statement[i+1 : j]

		idx, seen := indexes[name]
		if !seen {
			bind, ok := binds[name]
			if !ok {
				return "", nil, fmt.Errorf("malformed statement: no binding for placeholder @%s", name)
			}
			if err := bind.Type.check(name, bind.Value); err != nil {
				return "", nil, err
			}
			args = append(args, bind.Value)
			idx = len(args)
			indexes[name] = idx
		}

		fmt.Fprintf(&b, "$%d", idx)
		i = j - 1
	}

	if quote != 0 {
		return "", nil, errors.New("malformed statement: unterminated quote")
	}

	for name := range binds {
		if _, ok := indexes[name]; !ok {
			return "", nil, fmt.Errorf("malformed statement: binding %q is never used", name)
		}
	}

	return b.String(), args, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
