package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/reportr/internal/core"
)

// Add inserts an entry and returns its id. Any cached query results
// are invalidated.
func (s *Store) Add(ctx context.Context, e core.Entry) (int64, error) {
	if e.Project == "" {
		return 0, fmt.Errorf("add entry: project is required")
	}
	if e.Hours <= 0 {
		return 0, fmt.Errorf("add entry: hours must be positive")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (entry_date, hours, rate, project, client, category, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Date.Format("2006-01-02"), e.Hours, e.Rate, e.Project, e.Client, e.Category, e.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("add entry: %w", err)
	}
	id, _ := res.LastInsertId()
	s.cache.clear()
	return id, nil
}

// Delete removes an entry by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete entry %d: not found", id)
	}
	s.cache.clear()
	return nil
}

// Query returns the entries matching the option set, ordered by date.
// Results are cached per option set until the next write; both bounds
// of a date range are inclusive.
func (s *Store) Query(ctx context.Context, opts core.Options) ([]core.Entry, error) {
	key := cacheKey(opts)
	if entries, ok := s.cache.get(key); ok {
		return entries, nil
	}

	query := `SELECT id, entry_date, hours, rate, project, client, category, notes FROM entries WHERE 1=1`
	var args []any

	if opts.Year != nil {
		query += ` AND strftime('%Y', entry_date) = ?`
		args = append(args, fmt.Sprintf("%04d", *opts.Year))
	}
	if opts.Month != nil {
		query += ` AND strftime('%m', entry_date) = ?`
		args = append(args, fmt.Sprintf("%02d", *opts.Month))
	}
	if opts.Project != "" {
		query += ` AND project = ? COLLATE NOCASE`
		args = append(args, opts.Project)
	}
	if opts.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, opts.From.Format("2006-01-02"))
	}
	if opts.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, opts.To.Format("2006-01-02"))
	}
	query += ` ORDER BY entry_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var e core.Entry
		var dateStr string
		if err := rows.Scan(&e.ID, &dateStr, &e.Hours, &e.Rate, &e.Project, &e.Client, &e.Category, &e.Notes); err != nil {
			return nil, err
		}
		e.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("entry %d: bad date %q: %w", e.ID, dateStr, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.set(key, entries)
	out := make([]core.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// ClearCache drops all cached query results. The TUI calls this on
// manual refresh; writes through the store do it automatically.
func (s *Store) ClearCache() {
	s.cache.clear()
}

// ListProjects returns the distinct project names present in the
// database, for completion and the add form.
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT project FROM entries ORDER BY project COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
