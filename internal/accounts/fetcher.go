package accounts

import "github.com/gagliardetto/solana-go"

// Fetcher exposes raw account bytes keyed by address. Implementations may
// be partial: a missing entry means the account was not fetched this cycle.
type Fetcher interface {
	Account(pk solana.PublicKey) ([]byte, bool)
}

// Map is an in-memory mirror of fetched account data. It is pure storage:
// entries are appended or overwritten, never validated or evicted.
type Map map[solana.PublicKey][]byte

// Account returns the raw data for pk if present.
func (m Map) Account(pk solana.PublicKey) ([]byte, bool) {
	data, ok := m[pk]
	return data, ok
}

// Merge overwrites entries in m with those from other.
func (m Map) Merge(other Map) {
	for pk, data := range other {
		m[pk] = data
	}
}

// Clone deep-copies the map and all account data.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for pk, data := range m {
		buf := make([]byte, len(data))
		copy(buf, data)
		out[pk] = buf
	}
	return out
}
