// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package addressbook

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/squarer/letter-generator/pkg/types"
)

// SearchOptions holds parameters for address book queries.
type SearchOptions struct {
	// Query matches a substring of the name or address. Queries of three
	// or more characters use the FTS5 trigram index; shorter ones fall back
	// to LIKE.
	Query string

	// Category restricts results to one list. Empty matches all.
	Category types.Category

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

const categoryOrder = `CASE p.category WHEN 'sender' THEN 0 WHEN 'recipient' THEN 1 ELSE 2 END`

// List returns every entry in category (all categories when empty), in
// form order and then by name.
func (s *Store) List(ctx context.Context, category types.Category) ([]Entry, error) {
	q := `SELECT p.id, p.category, p.name, p.address, p.created_at, p.updated_at
		FROM parties p WHERE 1=1`
	var args []any
	if category != "" {
		q += ` AND p.category = ?`
		args = append(args, string(category))
	}
	q += ` ORDER BY ` + categoryOrder + `, p.name, p.id`
	return s.query(ctx, q, args...)
}

// Search finds entries whose name or address contains opts.Query. Trigram
// matches are ranked by relevance; LIKE matches are ordered by name.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]Entry, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = utf8.RuneCountInString(query) >= minTrigramQuery
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.category, p.name, p.address, p.created_at, p.updated_at
			FROM parties_fts
			JOIN parties p ON p.rowid = parties_fts.rowid
			WHERE parties_fts MATCH ?`)
		args = append(args, phrase(query))
	} else {
		qb.WriteString(
			`SELECT p.id, p.category, p.name, p.address, p.created_at, p.updated_at
			FROM parties p
			WHERE (p.name LIKE ? ESCAPE '\' OR p.address LIKE ? ESCAPE '\')`)
		like := "%" + escapeLike(query) + "%"
		args = append(args, like, like)
	}

	if opts.Category != "" {
		qb.WriteString(` AND p.category = ?`)
		args = append(args, string(opts.Category))
	}

	if useFTS {
		qb.WriteString(` ORDER BY parties_fts.rank, p.name`)
	} else {
		qb.WriteString(` ORDER BY ` + categoryOrder + `, p.name`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	return s.query(ctx, qb.String(), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying address book: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// phrase quotes q as a single FTS5 string so operators in user input are
// matched literally.
func phrase(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}

func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}
