package storage

// Provider persists the entity store's committed shape and restores it at
// load time. Implementations never mutate entities on their own; they only
// serialize and revive.
type Provider interface {
	// Init performs first-time setup (directories, empty schema). It fails
	// if the target already exists.
	Init() error

	// Load restores the last persisted snapshot. A missing target yields an
	// empty snapshot and no error; a corrupt one yields an error the caller
	// may treat as non-fatal.
	Load() (Snapshot, error)

	// Save replaces the persisted snapshot wholesale.
	Save(Snapshot) error

	Close() error

	// Path returns the location of the underlying data file.
	Path() string
}
