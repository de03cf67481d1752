// Package bolt stores fact tables in a bbolt file.
//
// Each table gets its own bucket.  Rows are stored as JSON under keys
// that preserve row order.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/ibis"

	bolt "go.etcd.io/bbolt"
)

// ErrNotOpen is returned by operations on a Storage that isn't open.
var ErrNotOpen = errors.New("storage not open")

type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	b, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = b
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}
	return s.db.Close()
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("BoltDB Storage."+format, args...)
	}
}

func rowKey(i int) []byte {
	return []byte(fmt.Sprintf("%08d", i))
}

// WriteTable replaces the stored table with the given one.
func (s *Storage) WriteTable(ctx context.Context, t *db.Table) error {
	if s.db == nil {
		return ErrNotOpen
	}
	s.logf("WriteTable %s (%d rows)", t.Name, len(t.Rows))

	vals := make([][]byte, 0, len(t.Rows))
	for _, r := range t.Rows {
		js, err := json.Marshal(r)
		if err != nil {
			return err
		}
		vals = append(vals, js)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		name := []byte(t.Name)
		if tx.Bucket(name) != nil {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for i, js := range vals {
			if err := b.Put(rowKey(i), js); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadTable reads a stored table.  A table that was never written is
// an error.
func (s *Storage) ReadTable(ctx context.Context, name string) (*db.Table, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	t := &db.Table{
		Name: name,
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("no table %q", name)
		}
		c := b.Cursor()
		for k, js := c.First(); k != nil; k, js = c.Next() {
			var r db.Row
			if err := json.Unmarshal(js, &r); err != nil {
				return fmt.Errorf("table %s row %s: %w", name, k, err)
			}
			t.Rows = append(t.Rows, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logf("ReadTable %s found %d rows", name, len(t.Rows))
	return t, nil
}

// RemTable deletes a stored table.
func (s *Storage) RemTable(ctx context.Context, name string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	s.logf("RemTable %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket([]byte(name))
	})
}

// Tables lists the names of the stored tables.
func (s *Storage) Tables(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	var acc []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			acc = append(acc, string(name))
			return nil
		})
	})
	return acc, err
}

// Database is an ibis.Database that reads its tables from storage on
// every consultation, so updates to the file are seen immediately.
//
// With no Table, every table in the file is consulted as db.Tables.
type Database struct {
	Storage *Storage
	Table   string
}

// Consult implements ibis.Database.
func (d *Database) Consult(ctx context.Context, q ibis.Question, com *core.Set[ibis.Prop]) (ibis.Prop, error) {
	names := []string{d.Table}
	if d.Table == "" {
		var err error
		if names, err = d.Storage.Tables(ctx); err != nil {
			return ibis.Prop{}, err
		}
	}
	ts := make(db.Tables, 0, len(names))
	for _, name := range names {
		t, err := d.Storage.ReadTable(ctx, name)
		if err != nil {
			return ibis.Prop{}, err
		}
		t.Verbose = d.Storage.Debug
		ts = append(ts, t)
	}
	return ts.Consult(ctx, q, com)
}
