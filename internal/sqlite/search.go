package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

var _ record.SearchRepository = (*SearchRepository)(nil)

// SearchRepository implements record.SearchRepository with FTS5 over record names
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search matches each word of query as a prefix of a word in the record name.
func (r *SearchRepository) Search(ctx context.Context, collection record.Collection, query string, opts record.SearchOptions) ([]record.SearchResult, error) {
	match := ftsQuery(query)
	results := []record.SearchResult{}
	if match == "" {
		return results, nil
	}

	baseQuery := `
		SELECT r.id, r.collection, r.name, r.created_at, bm25(records_fts) AS rank
		FROM records_fts
		JOIN records r ON r.rowid = records_fts.rowid
		WHERE records_fts MATCH ?
	`
	args := []any{match}
	if collection != "" {
		baseQuery += " AND r.collection = ?"
		args = append(args, string(collection))
	}
	baseQuery += " ORDER BY rank, r.created_at"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			baseQuery += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, unavailable("failed to search records", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			result    record.SearchResult
			coll      string
			createdAt string
		)
		if err := rows.Scan(&result.Record.ID, &coll, &result.Record.Name, &createdAt, &result.Rank); err != nil {
			return nil, unavailable("failed to scan search result", err)
		}
		result.Record.Collection = record.Collection(coll)
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			result.Record.CreatedAt = ts
		}
		// bm25 is lower-is-better; Rank is higher-is-better.
		result.Rank = -result.Rank
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("error iterating search results", err)
	}
	return results, nil
}

// ftsQuery quotes each word as an FTS5 prefix term.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, fmt.Sprintf(`"%s"*`, strings.ReplaceAll(w, `"`, `""`)))
	}
	return strings.Join(terms, " ")
}
