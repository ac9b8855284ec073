package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	. "github.com/source-academy/scm-slang/pkg/store/storedefs"
)

func init() {
	initDB["create the history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

func (s *dbStore) view(f func(b *bolt.Bucket) error) error {
	return s.db.View(func(tx *bolt.Tx) error { return f(tx.Bucket([]byte(bucketCmd))) })
}

func (s *dbStore) update(f func(b *bolt.Bucket) error) error {
	return s.db.Update(func(tx *bolt.Tx) error { return f(tx.Bucket([]byte(bucketCmd))) })
}

// NextCmdSeq returns the sequence number the next chunk added to the history
// will get. Sequence numbers start from 1.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.view(func(b *bolt.Bucket) error {
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends a chunk of code to the history and returns its sequence
// number. A chunk identical to the last entry is not stored again; the
// sequence number of the last entry is returned instead.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.update(func(b *bolt.Bucket) error {
		if k, v := b.Cursor().Last(); k != nil && string(v) == text {
			seq = unmarshalSeq(k)
			return nil
		}
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// TrimCmds deletes all but the last keep entries of the history.
func (s *dbStore) TrimCmds(keep int) error {
	return s.update(func(b *bolt.Bucket) error {
		c := b.Cursor()
		k, _ := c.Last()
		for i := 0; i < keep && k != nil; i++ {
			k, _ = c.Prev()
		}
		// Cursor.Delete skips an entry when used while iterating, so collect
		// the keys first.
		var stale [][]byte
		for ; k != nil; k, _ = c.Prev() {
			stale = append(stale, k)
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		if len(stale) > 0 {
			logger.Printf("trimmed %d history entries", len(stale))
		}
		return nil
	})
}

// CmdsWithSeq returns the entries whose sequence numbers are in [from, upto),
// in order.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.view(func(b *bolt.Bucket) error {
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

// PrevCmd finds the last entry before upto that starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.view(func(b *bolt.Bucket) error {
		c := b.Cursor()
		k, v := c.Seek(marshalSeq(uint64(upto)))
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// Keys are big-endian so that the byte order of keys is their numeric order.
func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
