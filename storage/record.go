// Package storage provides on-disk collections that can take part in joins. Keys are byte strings
// ordered bytewise, and any number of values may share a key.
package storage

import (
	"bytes"

	"github.com/anacrolix/log"
)

type Record struct {
	Key   []byte
	Value []byte
}

func (me Record) String() string {
	return string(me.Key) + "=" + string(me.Value)
}

func RecordKey(r Record) []byte {
	return r.Key
}

// The order of keys in every collection here.
func CompareKeys(a, b []byte) int {
	return bytes.Compare(a, b)
}

var logger = log.Default.WithNames("mergejoin", "storage")
