package activity

// Listing limits applied when ListActivityOptions.Limit is unset or too large.
const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	Collection   string
	RecordID     string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

func (o ListActivityOptions) normalized() ListActivityOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
