package storage

import "fmt"

// NewStore selects the run-record backend. "memory" (the default) keeps
// summaries, snapshots, and metric points in process; "sqlite" persists them
// at sqlitePath and is only available under the sqlite build tag.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes backends that hold external resources, such as the
// sqlite store's database handle. The memory store has nothing to release.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
