package report

import "fmt"

// historyCacheSize is the number of runs kept in memory in front of the
// backing store.
const historyCacheSize = 16

// OpenHistory builds the run history for driver. An empty driver keeps
// history in memory only. The returned close function releases the backing
// store and is never nil.
func OpenHistory(driver, path string) (*LRUStore, func() error, error) {
	nop := func() error { return nil }
	switch driver {
	case "":
		return NewLRUStore(historyCacheSize, nil), nop, nil
	case "json":
		return NewLRUStore(historyCacheSize, NewDiskStore(path)), nop, nil
	case "sqlite":
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return NewLRUStore(historyCacheSize, db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown history driver %q", driver)
	}
}
