// Package datarecording records structured simulation output, such as
// per-channel fire logs, into SQLite databases.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table with given name, whose columns are
	// the fields of the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-type entry into a table that already
	// exists.
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing names of all tables
	ListTables() []string

	// Flush flushes all the buffered entries into the database
	Flush()

	// Close flushes and closes the database
	Close()
}

// New creates a DataRecorder backed by a SQLite database at the given path.
// If the path is empty, a unique file name is generated.
func New(path string) DataRecorder {
	w := NewSQLiteWriter(path)
	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	columns []string
	entries []any
}

// SQLiteWriter is the writer that writes data into a SQLite database.
type SQLiteWriter struct {
	*sql.DB

	dbName    string
	tables    map[string]*table
	batchSize int
}

// NewSQLiteWriter creates a SQLiteWriter that will write to the given path.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		tables:    make(map[string]*table),
		batchSize: 100000,
	}
}

// Init establishes a connection to the database.
func (w *SQLiteWriter) Init() {
	if w.dbName == "" {
		w.dbName = "framestep_data_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db
}

// CreateTable creates a table whose columns are the fields of the sample
// entry. Only scalar field types are supported.
func (w *SQLiteWriter) CreateTable(tableName string, sampleEntry any) {
	if _, ok := w.tables[tableName]; ok {
		panic("table " + tableName + " already created")
	}

	fields := structs.Fields(sampleEntry)
	columns := make([]string, 0, len(fields))

	for _, f := range fields {
		kind := reflect.ValueOf(f.Value()).Kind()
		if !isAllowedType(kind) {
			panic(fmt.Sprintf(
				"field %s of table %s has unsupported type %s",
				f.Name(), tableName, kind))
		}

		columns = append(columns, f.Name())
	}

	stmt := "CREATE TABLE " + tableName +
		" (" + strings.Join(columns, ", ") + ");"

	_, err := w.Exec(stmt)
	if err != nil {
		panic(err)
	}

	w.tables[tableName] = &table{columns: columns}
}

func isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// InsertData buffers one entry to be written into the given table.
func (w *SQLiteWriter) InsertData(tableName string, entry any) {
	t, ok := w.tables[tableName]
	if !ok {
		panic("table " + tableName + " does not exist")
	}

	t.entries = append(t.entries, entry)

	if len(t.entries) >= w.batchSize {
		w.flushTable(tableName, t)
	}
}

// ListTables returns the names of all the created tables.
func (w *SQLiteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush writes all the buffered entries into the database.
func (w *SQLiteWriter) Flush() {
	for name, t := range w.tables {
		w.flushTable(name, t)
	}
}

func (w *SQLiteWriter) flushTable(name string, t *table) {
	if len(t.entries) == 0 {
		return
	}

	tx, err := w.Begin()
	if err != nil {
		panic(err)
	}

	placeholders := "(?" + strings.Repeat(", ?", len(t.columns)-1) + ")"
	stmt, err := tx.Prepare("INSERT INTO " + name + " VALUES " + placeholders)
	if err != nil {
		panic(err)
	}

	for _, entry := range t.entries {
		_, err := stmt.Exec(structs.Values(entry)...)
		if err != nil {
			panic(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entries = nil
}

// Close flushes all the buffered data and closes the database.
func (w *SQLiteWriter) Close() {
	w.Flush()

	err := w.DB.Close()
	if err != nil {
		panic(err)
	}
}
