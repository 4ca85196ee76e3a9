package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// dateFormat renders warehouse dates the way report files carry them.
const dateFormat = "2006-01-02"

// PostgresQuerier runs warehouse queries over a single pgx connection.
// Runs are sequential, so no pool is needed.
type PostgresQuerier struct {
	conn *pgx.Conn
}

var _ Querier = (*PostgresQuerier)(nil)

// ConnectPostgres opens a warehouse connection from a DSN.
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresQuerier, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect warehouse: %w", err)
	}

	return &PostgresQuerier{conn: conn}, nil
}

// Query runs the SQL and renders every value to its string form.
func (q *PostgresQuerier) Query(ctx context.Context, query string) (Result, error) {
	rows, err := q.conn.Query(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("warehouse query: %w", err)
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	columns := make([]string, len(descriptions))

	for i, desc := range descriptions {
		columns[i] = desc.Name
	}

	result := Result{Columns: columns}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return Result{}, fmt.Errorf("warehouse row: %w", err)
		}

		row := make([]string, len(values))
		for i, value := range values {
			row[i] = formatValue(value)
		}

		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("warehouse query: %w", err)
	}

	return result, nil
}

// Close closes the warehouse connection.
func (q *PostgresQuerier) Close(ctx context.Context) error {
	return q.conn.Close(ctx)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(dateFormat)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
