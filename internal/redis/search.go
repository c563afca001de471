package redis

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

var _ record.SearchRepository = (*SearchRepository)(nil)

// SearchRepository scans collection hashes for names with a word starting with every query word
type SearchRepository struct {
	records *RecordRepository
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(client Client, prefix string) *SearchRepository {
	return &SearchRepository{records: NewRecordRepository(client, prefix)}
}

// Search matches each word of query as a prefix of a word in the record name.
func (r *SearchRepository) Search(ctx context.Context, collection record.Collection, query string, opts record.SearchOptions) ([]record.SearchResult, error) {
	words := strings.Fields(strings.ToLower(query))
	results := []record.SearchResult{}
	if len(words) == 0 {
		return results, nil
	}

	collections := record.Collections()
	if collection != "" {
		collections = []record.Collection{collection}
	}

	for _, c := range collections {
		recs, err := r.records.all(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if rank, ok := score(rec.Name, words); ok {
				results = append(results, record.SearchResult{Record: rec.Ref(), Rank: rank})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank > results[j].Rank
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			return []record.SearchResult{}, nil
		}
		results = results[opts.Offset:]
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// score requires every query word to prefix a name word, splitting names on
// anything that is not a letter or digit. Exact word matches rank higher.
func score(name string, words []string) (float64, bool) {
	nameWords := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	rank := 0.0
	for _, w := range words {
		best := 0.0
		for _, nw := range nameWords {
			switch {
			case nw == w:
				best = 2
			case best == 0 && strings.HasPrefix(nw, w):
				best = 1
			}
		}
		if best == 0 {
			return 0, false
		}
		rank += best
	}
	return rank, true
}
