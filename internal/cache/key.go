package cache

import "callme/internal/models"

// Kind separates list queries from single-record queries within a domain.
type Kind string

const (
	KindList   Kind = "list"
	KindDetail Kind = "detail"
)

// Key identifies a cached query: [domain, kind, discriminator]. Filters is a
// pointer-free value struct, so two keys built from structurally equal filter
// sets are equal under == and index the same entry regardless of how the
// filters were constructed.
type Key struct {
	Domain  string
	Kind    Kind
	Filters models.ReminderFilters
	ID      string
}

// ListKey builds the key for a filtered list query.
func ListKey(domain string, filters models.ReminderFilters) Key {
	return Key{Domain: domain, Kind: KindList, Filters: filters}
}

// DetailKey builds the key for a single-record query.
func DetailKey(domain, id string) Key {
	return Key{Domain: domain, Kind: KindDetail, ID: id}
}
