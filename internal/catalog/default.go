package catalog

import (
	"database/sql"
	"encoding/json"
	"time"

	"git.lost.host/meutraa/chunichart/internal/parser"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DefaultPath is where the scanner keeps its catalog.
const DefaultPath = "./charts.db"

type DefaultCatalog struct {
	db *sql.DB
}

func (c *DefaultCatalog) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "unable to open catalog %s", path)
	}

	initStatement := `
	create table if not exists charts 
	  (
		  id integer not null primary key, 
		  scan text not null,
		  sum text not null,
		  path text,
		  format text,
		  title text,
		  notes integer,
		  kinds blob,
		  saved_at integer
	  );
	create index if not exists charts_sum on charts(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create catalog tables")
	}

	c.db = db
	return nil
}

func (c *DefaultCatalog) Deinit() {
	if nil != c.db {
		c.db.Close()
	}
}

func (c *DefaultCatalog) NewScan() uuid.UUID {
	return uuid.New()
}

func (c *DefaultCatalog) Save(scan uuid.UUID, s *parser.Summary) error {
	kinds, err := json.Marshal(s.Kinds)
	if nil != err {
		return errors.Wrap(err, "unable to marshal note kinds")
	}
	_, err = c.db.Exec(
		"insert into charts(scan, sum, path, format, title, notes, kinds, saved_at) values(?, ?, ?, ?, ?, ?, ?, ?)",
		scan.String(), s.Sum, s.Path, string(s.Format), s.Title, s.Notes, kinds, time.Now().UnixNano(),
	)
	return errors.Wrapf(err, "unable to save %s", s.Path)
}

// Load returns every entry recorded for the chart text with this sum,
// oldest first.
func (c *DefaultCatalog) Load(sum string) ([]Entry, error) {
	return c.query("select id, scan, sum, path, format, title, notes, kinds, saved_at from charts where sum = ? order by id", sum)
}

// Scan returns the entries saved under one scan id.
func (c *DefaultCatalog) Scan(scan uuid.UUID) ([]Entry, error) {
	return c.query("select id, scan, sum, path, format, title, notes, kinds, saved_at from charts where scan = ? order by id", scan.String())
}

func (c *DefaultCatalog) query(q string, arg string) ([]Entry, error) {
	entries := []Entry{}
	rows, err := c.db.Query(q, arg)
	if nil != err {
		return nil, errors.Wrap(err, "unable to query catalog")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e            Entry
			scan, format string
			kinds        []byte
			savedAt      int64
		)
		if err := rows.Scan(&e.ID, &scan, &e.Sum, &e.Path, &format, &e.Title, &e.Notes, &kinds, &savedAt); nil != err {
			return nil, errors.Wrap(err, "unable to read catalog row")
		}
		if e.Scan, err = uuid.Parse(scan); nil != err {
			return nil, errors.Wrapf(err, "corrupt scan id %q", scan)
		}
		if err := json.Unmarshal(kinds, &e.Kinds); nil != err {
			return nil, errors.Wrap(err, "unable to unmarshal note kinds")
		}
		e.Format = parser.Format(format)
		e.SavedAt = time.Unix(0, savedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
