package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// metadataFields are API bookkeeping fields carried over from the source
// export. They are stripped on load; the target instance assigns its own.
var metadataFields = []string{"url", "display", "display_url", "created", "last_updated"}

// IDCache maps table name → source ID (as a string, matching the JSON
// export) → natural key. Loaded from id_mappings.json; used to translate
// the data files' numeric parent references into names.
type IDCache map[string]map[string]string

// Name resolves a source ID to its natural key.
func (c IDCache) Name(table string, id int64) (string, bool) {
	m, ok := c[table]
	if !ok {
		return "", false
	}
	name, ok := m[strconv.FormatInt(id, 10)]
	return name, ok
}

// Dataset holds all loaded records, indexed per type and per source ID,
// plus the ID-to-name cache.
type Dataset struct {
	dir  string
	rows map[string][]*Row
	byID map[string]map[int64]*Row
	IDs  IDCache
}

// LoadDataset reads one JSON file per registered object type from dir,
// plus id_mappings.json. A missing file yields zero records unless the
// type is foundational, in which case the whole run aborts.
func LoadDataset(dir string) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s: not a directory", dir)
	}

	ds := &Dataset{
		dir:  dir,
		rows: make(map[string][]*Row),
		byID: make(map[string]map[int64]*Row),
		IDs:  make(IDCache),
	}

	mappingsPath := filepath.Join(dir, "id_mappings.json")
	if err := readJSONFile(mappingsPath, &ds.IDs); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", mappingsPath, err)
		}
	}

	for _, def := range All() {
		path := filepath.Join(dir, def.Key+".json")
		var records []Record
		if err := readJSONFile(path, &records); err != nil {
			if os.IsNotExist(err) {
				if def.Foundational {
					return nil, &MissingDataFileError{Type: def.Key, Path: path}
				}
				continue
			}
			return nil, fmt.Errorf("load %s: %w", path, err)
		}

		rows := make([]*Row, 0, len(records))
		index := make(map[int64]*Row, len(records))
		for _, rec := range records {
			stripMetadata(rec)
			row := &Row{Rec: rec}
			rows = append(rows, row)
			if id := rec.SourceID(); id != 0 {
				index[id] = row
			}
		}
		ds.rows[def.Key] = rows
		ds.byID[def.Key] = index
	}

	return ds, nil
}

// Dir returns the directory the dataset was loaded from.
func (d *Dataset) Dir() string {
	return d.dir
}

// Rows returns the loaded rows for an object type, in file order.
func (d *Dataset) Rows(key string) []*Row {
	return d.rows[key]
}

// RowByID returns the row with the given source ID, or nil.
func (d *Dataset) RowByID(key string, id int64) *Row {
	return d.byID[key][id]
}

// NameOf resolves a source ID to a natural key via the ID cache. When the
// cache has no entry, the loaded record's own natural key is used as a
// fallback.
func (d *Dataset) NameOf(key string, id int64) (string, bool) {
	if name, ok := d.IDs.Name(key, id); ok {
		return name, true
	}
	if row := d.RowByID(key, id); row != nil {
		if def, ok := Get(key); ok {
			return def.RefName(row.Rec), true
		}
	}
	return "", false
}

// TotalRecords returns the number of loaded records across all types.
func (d *Dataset) TotalRecords() int {
	n := 0
	for _, rows := range d.rows {
		n += len(rows)
	}
	return n
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func stripMetadata(rec Record) {
	for _, f := range metadataFields {
		delete(rec, f)
	}
}
