package killring

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketKill = "kill"

// DB is a Ring persisted in a bbolt database file.
type DB struct {
	db   *bolt.DB
	size int
}

// OpenDB opens or creates the database file at path and returns a Ring
// holding up to size entries in it.
func OpenDB(path string, size int) (*DB, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open kill ring %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKill))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize kill ring: %w", err)
	}
	return &DB{db, size}, nil
}

func (d *DB) Push(text string) error {
	if text == "" {
		return nil
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKill))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(marshalSeq(seq), []byte(text)); err != nil {
			return err
		}
		return trim(b, d.size)
	})
}

// Deletes the oldest entries until at most size are left.
func trim(b *bolt.Bucket, size int) error {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	for ; n > size; n-- {
		k, _ := c.First()
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) Top() (string, error) {
	var text string
	err := d.db.View(func(tx *bolt.Tx) error {
		_, v := tx.Bucket([]byte(bucketKill)).Cursor().Last()
		if v == nil {
			return ErrEmpty
		}
		text = string(v)
		return nil
	})
	return text, err
}

func (d *DB) Entries() ([]string, error) {
	var entries []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKill)).ForEach(func(_, v []byte) error {
			entries = append(entries, string(v))
			return nil
		})
	})
	return entries, err
}

func (d *DB) Close() error { return d.db.Close() }

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
