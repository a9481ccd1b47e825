// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter defines methods to read & write kv.
type GetPutter interface {
	Getter
	Putter
}

// Batch batches writes, all or nothing on Write.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store full functional kv store.
type Store interface {
	GetPutter
	NewBatch() Batch
	// Iterate walks keys with the given prefix in ascending order, until
	// fn returns false. Key/value slices are only valid within fn.
	Iterate(prefix []byte, fn func(key, value []byte) bool) error
	IsNotFound(err error) bool
	Close() error
}
