// Package store caches tree decompositions on disk, so that a graph is only decomposed once per heuristic.
package store

import (
	"encoding/binary"
	"encoding/json"

	"github.com/AlexandreDubray/couaincre/td"
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

// keyPrefix is bumped whenever the encoding of cached decompositions changes.
var keyPrefix = []byte("td/1/")

// A Store is a persistent map from (graph, heuristic) keys to decompositions.
// It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// record is the stored form of a decomposition.
type record struct {
	NbVertices int         `json:"n"`
	Bags       []td.Bag    `json:"bags"`
	Parent     []int       `json:"parent"`
	Order      []td.Vertex `json:"order,omitempty"`
}

// Open opens the store in dir, creating it if needed. An empty dir gives a store that lives in memory only.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.MetricsEnabled = false
	if dir == "" {
		opts.InMemory = true
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, td.ConfigError(errors.Wrapf(err, "could not open store %q", dir))
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Key identifies the decomposition of g by h.
func Key(g *td.Graph, h td.Heuristic) []byte {
	digest := xxhash.New()
	var buf [8]byte
	write := func(x int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		digest.Write(buf[:])
	}
	write(g.Len())
	for _, e := range g.Edges() {
		write(int(e[0]))
		write(int(e[1]))
	}
	key := append([]byte(nil), keyPrefix...)
	key = append(key, h.String()...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, digest.Sum64())
}

// Get returns the decomposition stored under key, if any.
func (s *Store) Get(key []byte) (*td.Decomposition, bool, error) {
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "could not read %q", key)
	}
	d, err := td.NewDecomposition(rec.NbVertices, rec.Bags, rec.Parent, rec.Order)
	if err != nil {
		return nil, false, errors.Wrapf(err, "corrupted entry %q", key)
	}
	return d, true, nil
}

// Put stores d under key, replacing any previous entry.
func (s *Store) Put(key []byte, d *td.Decomposition) error {
	val, err := json.Marshal(record{
		NbVertices: d.NbVertices,
		Bags:       d.Bags,
		Parent:     d.Parent,
		Order:      d.Order,
	})
	if err != nil {
		return errors.Wrap(err, "could not encode decomposition")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	return errors.Wrapf(err, "could not write %q", key)
}
