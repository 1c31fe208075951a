// Package store persists serialized collection snapshots under fixed keys.
// It is a plain key-value layer: no migrations, no cross-key transactions,
// every save replaces the previous snapshot in full.
package store

// Snapshot keys for the two persisted collections.
const (
	KeyTasks = "octaltask_tasks"
	KeyLists = "octaltask_lists"
)

// Store reads and writes raw snapshots. Load returns ok=false when no
// snapshot exists for the key; that is not an error.
type Store interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
	Close() error
}
