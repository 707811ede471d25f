// Package store provides the persistent key-value adapter for assets.
// Assets are keyed by their address bytes, the value is their
// binary encoding, and retrieval yields the same Asset modulo the
// binary codec's round-trip guarantee. The backing engine
// (syndtr/goleveldb) and the thin wrapper style are grounded on
// tolelom-tolchain's storage/leveldb.go.
package store

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/thecharge/uplink/asset"
)

// ErrNotFound is returned when an address has no stored asset.
var ErrNotFound = errors.New("store: asset not found")

// AssetStore is the boundary the asset core's collaborators use to
// persist and retrieve assets. The core itself never depends on this
// interface; it lives entirely in the surrounding node.
type AssetStore interface {
	Put(a asset.Asset) error
	Get(addr asset.Address) (asset.Asset, error)
	Delete(addr asset.Address) error
	All() ([]asset.Asset, error)
	Close() error
}

// LevelDBAssetStore implements AssetStore on top of a LevelDB database,
// keyed by the asset's address bytes and storing the authoritative
// binary encoding.
type LevelDBAssetStore struct {
	db  *leveldb.DB
	log *logrus.Entry
}

// Open opens (or creates) a LevelDB database at path for asset storage.
func Open(path string) (*LevelDBAssetStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open leveldb %q: %w", path, err)
	}
	return &LevelDBAssetStore{
		db:  db,
		log: logrus.WithField("component", "asset-store"),
	}, nil
}

// Put writes a's binary encoding under its address key, overwriting any
// prior value.
func (s *LevelDBAssetStore) Put(a asset.Asset) error {
	key := a.Address.Bytes[:]
	val := asset.Encode(a)
	if err := s.db.Put(key, val, nil); err != nil {
		return fmt.Errorf("store: put %s: %w", a.Address.Hex(), err)
	}
	s.log.WithField("address", a.Address.Hex()).Debug("asset stored")
	return nil
}

// Get retrieves and decodes the asset stored under addr.
func (s *LevelDBAssetStore) Get(addr asset.Address) (asset.Asset, error) {
	val, err := s.db.Get(addr.Bytes[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return asset.Asset{}, ErrNotFound
	}
	if err != nil {
		return asset.Asset{}, fmt.Errorf("store: get %s: %w", addr.Hex(), err)
	}
	a, err := asset.Decode(val)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("store: decode %s: %w", addr.Hex(), err)
	}
	return a, nil
}

// Delete removes the asset stored under addr, if any.
func (s *LevelDBAssetStore) Delete(addr asset.Address) error {
	if err := s.db.Delete(addr.Bytes[:], nil); err != nil {
		return fmt.Errorf("store: delete %s: %w", addr.Hex(), err)
	}
	return nil
}

// All decodes and returns every asset currently stored, in key order.
func (s *LevelDBAssetStore) All() ([]asset.Asset, error) {
	iter := s.db.NewIterator(util.BytesPrefix(nil), nil)
	defer iter.Release()

	var out []asset.Asset
	for iter.Next() {
		val := make([]byte, len(iter.Value()))
		copy(val, iter.Value())
		a, err := asset.Decode(val)
		if err != nil {
			return nil, fmt.Errorf("store: decode iterator entry: %w", err)
		}
		out = append(out, a)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("store: iterate: %w", err)
	}
	return out, nil
}

// Close releases the underlying LevelDB handle. It is safe to call once
// per Open call.
func (s *LevelDBAssetStore) Close() error {
	return s.db.Close()
}
