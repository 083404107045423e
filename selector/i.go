package selector

// Catalog supplies pump identities and their raw performance tables. The
// catalog itself is a read-only external resource; tables are loaded lazily
// per pump during evaluation.
type Catalog interface {
	ListPumps() (names []string, err error)
	PumpTables(name string) (tables *PumpTables, err error)
}
