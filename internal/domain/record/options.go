package record

// SearchOptions provides filtering options for search.
type SearchOptions struct {
	Limit  int
	Offset int
}

// DefaultSearchLimit applies when SearchOptions.Limit is unset.
const DefaultSearchLimit = 20
