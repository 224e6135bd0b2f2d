package journal

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"
)

var bucketEvents = []byte("events")

// envelope wraps an event for storage so the concrete type survives the
// round trip. The inner type must have been passed to RegisterEvent.
type envelope struct {
	Event Event
}

// BoltJournal is an append-only journal backed by a bbolt database. Events
// are keyed by an 8-byte big-endian sequence number so replay iterates in
// emission order.
type BoltJournal struct {
	mu     sync.Mutex
	db     *bbolt.DB
	closed bool
}

// OpenBolt opens or creates the journal database at dbPath. The parent
// directory is created if it does not exist.
func OpenBolt(dbPath string) (*BoltJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create bucket: %w", err)
	}
	return &BoltJournal{db: db}, nil
}

// Close closes the underlying database. Record, Len, and Replay return
// ErrClosed afterwards.
func (j *BoltJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	j.closed = true
	return j.db.Close()
}

// checkOpen reports ErrClosed once Close has run.
func (j *BoltJournal) checkOpen() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	return nil
}

// Record appends e with the next sequence number.
func (j *BoltJournal) Record(e Event) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	data, err := encodeGob(envelope{Event: e})
	if err != nil {
		return fmt.Errorf("journal: encode %q: %w", e.Kind(), err)
	}
	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
	if err != nil {
		return fmt.Errorf("journal: record %q: %w", e.Kind(), err)
	}
	return nil
}

// Len returns the number of stored events.
func (j *BoltJournal) Len() (int, error) {
	if err := j.checkOpen(); err != nil {
		return 0, err
	}
	var n int
	err := j.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketEvents).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("journal: len: %w", err)
	}
	return n, nil
}

// Replay calls fn for every stored event in emission order. Replay stops at
// the first error from fn and returns it.
func (j *BoltJournal) Replay(fn func(seq uint64, e Event) error) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	return j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketEvents).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var env envelope
			if err := decodeGob(v, &env); err != nil {
				return fmt.Errorf("%w: seq %d: %v", ErrCorruptRecord, binary.BigEndian.Uint64(k), err)
			}
			if err := fn(binary.BigEndian.Uint64(k), env.Event); err != nil {
				return err
			}
		}
		return nil
	})
}

// seqKey encodes a sequence number as an 8-byte big-endian key for sorted
// storage.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
