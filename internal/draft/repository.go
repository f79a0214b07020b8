package draft

// Keys of the editor drafts.
const (
	QueryKey = "query"
	UdfKey   = "udf"
)

// Repository stores the unsaved editor contents between sessions. A missing key
// is reported through the bool result, not as an error, and an empty string is
// a valid stored value.
type Repository interface {
	Get(key string) (string, bool, error)
	Set(key string, text string) error
	Clear(key string) error
}

// Draft is the editor contents restored from a Repository.
type Draft struct {
	Query string
	Udfs  string
	// HasQuery and HasUdfs report whether the corresponding key was stored.
	HasQuery bool
	HasUdfs  bool
}

// Load reads both draft keys.
func Load(repo Repository) (*Draft, error) {
	query, hasQuery, err := repo.Get(QueryKey)
	if err != nil {
		return nil, err
	}
	udfs, hasUdfs, err := repo.Get(UdfKey)
	if err != nil {
		return nil, err
	}
	return &Draft{Query: query, Udfs: udfs, HasQuery: hasQuery, HasUdfs: hasUdfs}, nil
}
