package store

import (
	"github.com/bootlin/elixir/family"
)

// defsCacheFamilies is the closed set of families generate_defs_caches
// builds presence indexes for (data.py never builds one for Family B,
// since DT-compatible-string lookups go through CompatibleDTS instead).
var defsCacheFamilies = []family.Family{family.C, family.Kconfig, family.DTS, family.Make}

// DB bundles every physical table the index needs, opened under one data
// directory. Grounded on data.py's DB class, which opens the same logical
// set of tables (variables/blob/hash/file/vers/defs/refs/docs, plus
// compatibledts/compatibledts_docs when dts-comp support is enabled).
type DB struct {
	Variables         Store
	Blobs             Store
	Hashes            Store
	Filenames         Store
	Versions          Store
	Definitions       Store
	References        Store
	DocComments       Store
	CompatibleDTS     Store // nil unless DTSComp
	CompatibleDTSDocs Store // nil unless DTSComp
	DefsCache         map[family.Family]Store

	dataDir string
}

// Open opens every table under dataDir. When dtsComp is false the
// DT-compatible tables are left nil, matching data.py's conditional
// opening of compatibledts.db/compatibledts_docs.db.
func Open(dataDir string, dtsComp bool) (*DB, error) {
	db := &DB{dataDir: dataDir, DefsCache: map[family.Family]Store{}}

	tables := []struct {
		table Table
		dst   *Store
	}{
		{Variables, &db.Variables},
		{Blobs, &db.Blobs},
		{Hashes, &db.Hashes},
		{Filenames, &db.Filenames},
		{Versions, &db.Versions},
		{Definitions, &db.Definitions},
		{References, &db.References},
		{DocComments, &db.DocComments},
	}
	if dtsComp {
		tables = append(tables,
			struct {
				table Table
				dst   *Store
			}{CompatibleDTS, &db.CompatibleDTS},
			struct {
				table Table
				dst   *Store
			}{CompatibleDTSDocs, &db.CompatibleDTSDocs},
		)
	}

	opened := make([]Store, 0, len(tables)+len(defsCacheFamilies))
	closeAll := func() {
		for _, s := range opened {
			_ = s.Close()
		}
	}

	for _, t := range tables {
		s, err := OpenBadger(dataDir, t.table)
		if err != nil {
			closeAll()
			return nil, err
		}
		*t.dst = s
		opened = append(opened, s)
	}

	for _, f := range defsCacheFamilies {
		s, err := OpenBadger(dataDir, DefsCacheTable(string(f)))
		if err != nil {
			closeAll()
			return nil, err
		}
		db.DefsCache[f] = s
		opened = append(opened, s)
	}

	return db, nil
}

// Close closes every opened table, returning the first error encountered
// (continuing to close the rest regardless).
func (db *DB) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, s := range []Store{db.Variables, db.Blobs, db.Hashes, db.Filenames, db.Versions, db.Definitions, db.References, db.DocComments} {
		record(s.Close())
	}
	if db.CompatibleDTS != nil {
		record(db.CompatibleDTS.Close())
	}
	if db.CompatibleDTSDocs != nil {
		record(db.CompatibleDTSDocs.Close())
	}
	for _, s := range db.DefsCache {
		record(s.Close())
	}
	return firstErr
}
