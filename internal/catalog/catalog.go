package catalog

import (
	"time"

	"git.lost.host/meutraa/chunichart/internal/parser"
	"github.com/google/uuid"
)

// Entry is one stored chart summary.
type Entry struct {
	ID      int64
	Scan    uuid.UUID
	Sum     string
	Path    string
	Format  parser.Format
	Title   string
	Notes   int
	Kinds   map[string]int
	SavedAt time.Time
}

type Catalog interface {
	Init(path string) error
	Deinit()
	NewScan() uuid.UUID
	Save(scan uuid.UUID, s *parser.Summary) error
	Load(sum string) ([]Entry, error)
	Scan(scan uuid.UUID) ([]Entry, error)
}
