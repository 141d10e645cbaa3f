package storage

import (
	"bytes"
	"encoding/binary"
	"iter"
	"time"

	"github.com/anacrolix/log"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

func OpenBolt(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt db %q", path)
	}
	logger.Levelf(log.Debug, "opened bolt db %q", path)
	return db, nil
}

// A bolt bucket holding a sub-bucket per key. Values under a key are stored against an increasing
// sequence number, so they come back in the order they were put.
type BoltBucket struct {
	db   *bbolt.DB
	name []byte
}

func NewBoltBucket(db *bbolt.DB, name string) (*BoltBucket, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "creating bucket %q", name)
	}
	return &BoltBucket{db: db, name: []byte(name)}, nil
}

func (me *BoltBucket) Put(key, value []byte) error {
	return me.PutRecords(func(yield func(Record) bool) {
		yield(Record{key, value})
	})
}

// Puts all the records in a single transaction.
func (me *BoltBucket) PutRecords(records iter.Seq[Record]) error {
	return me.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(me.name)
		for r := range records {
			if len(r.Key) == 0 {
				return errors.New("empty key")
			}
			group, err := b.CreateBucketIfNotExists(r.Key)
			if err != nil {
				return errors.Wrapf(err, "creating group for key %q", r.Key)
			}
			seq, err := group.NextSequence()
			if err != nil {
				return errors.WithStack(err)
			}
			var seqKey [8]byte
			binary.BigEndian.PutUint64(seqKey[:], seq)
			if err := group.Put(seqKey[:], r.Value); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

// Removes every value under key.
func (me *BoltBucket) DeleteKey(key []byte) error {
	return me.db.Update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(me.name).DeleteBucket(key)
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			err = nil
		}
		return err
	})
}

// Runs f in a read transaction that lasts until the sequence stops.
func (me *BoltBucket) view(f func(b *bbolt.Bucket, yield func(Record, error) bool) bool) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		tx, err := me.db.Begin(false)
		if err != nil {
			yield(Record{}, errors.Wrap(err, "beginning read tx"))
			return
		}
		defer tx.Rollback()
		b := tx.Bucket(me.name)
		if b == nil {
			yield(Record{}, errors.Errorf("bucket %q not found", me.name))
			return
		}
		f(b, yield)
	}
}

// Every record, in key order and then put order. A read transaction is held until iteration ends.
func (me *BoltBucket) Elements() iter.Seq2[Record, error] {
	return me.view(func(b *bbolt.Bucket, yield func(Record, error) bool) bool {
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v != nil {
				if !yield(Record{}, errors.Errorf("unexpected value at key %q", k)) {
					return false
				}
				continue
			}
			if !yieldGroup(b.Bucket(k), k, yield) {
				return false
			}
		}
		return true
	})
}

func (me *BoltBucket) CompareKeys(a, b []byte) int {
	return CompareKeys(a, b)
}

func (me *BoltBucket) Group(key []byte) iter.Seq2[Record, error] {
	return me.view(func(b *bbolt.Bucket, yield func(Record, error) bool) bool {
		if len(key) == 0 {
			return true
		}
		group := b.Bucket(key)
		if group == nil {
			return true
		}
		return yieldGroup(group, key, yield)
	})
}

// Distinct keys, ascending.
func (me *BoltBucket) Keys() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		err := me.db.View(func(tx *bbolt.Tx) error {
			return tx.Bucket(me.name).ForEach(func(k, _ []byte) error {
				if !yield(bytes.Clone(k), nil) {
					return errStop
				}
				return nil
			})
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(nil, err)
		}
	}
}

// Records are only valid during the transaction, so they're copied out.
func yieldGroup(group *bbolt.Bucket, key []byte, yield func(Record, error) bool) bool {
	key = bytes.Clone(key)
	c := group.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if !yield(Record{Key: key, Value: bytes.Clone(v)}, nil) {
			return false
		}
	}
	return true
}

var errStop = errors.New("stop")
