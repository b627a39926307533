// Package store implements the embedded realtime record store backing the
// catalog: a path-addressable tree of schemaless records persisted in bbolt,
// with store-generated ids and full-snapshot change subscriptions.
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/prayani09/ShriyashWork/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Top-level paths in use by the catalog.
const (
	ProductsPath   = "products"
	CategoriesPath = "categories"
)

var ErrNotFound = errors.New("record not found")

// Snapshot is a full copy of a subtree, delivered to subscribers on attach
// and after every mutation under the subscribed path. Consumers replace
// their whole in-memory copy on each delivery; snapshots are never patched.
type Snapshot map[string]domain.Record

// Store is the realtime tree store. All mutations are last-write-wins and
// non-transactional; a failed write surfaces once to the caller and is not
// retried. bbolt is the durable layer, the in-memory mirror backs snapshot
// emission and reads.
type Store struct {
	db   *bolt.DB
	bus  EventBus.Bus
	node *snowflake.Node

	mu     sync.RWMutex
	data   map[string]map[string]domain.Record
	subs   map[string]map[string]struct{}
	subSeq uint64
}

// Open loads the bbolt file at path and mirrors every bucket into memory.
// nodeID seeds the snowflake generator so record ids stay time-ordered and
// unique per deployment.
func Open(path string, nodeID int64) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open record store %s", path)
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init id generator")
	}

	s := &Store{
		db:   db,
		bus:  EventBus.New(),
		node: node,
		data: make(map[string]map[string]domain.Record),
		subs: make(map[string]map[string]struct{}),
	}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			root := string(name)
			s.data[root] = make(map[string]domain.Record)
			return b.ForEach(func(k, v []byte) error {
				var rec domain.Record
				if err := json.Unmarshal(v, &rec); err != nil {
					return errors.Wrapf(err, "decode %s/%s", root, k)
				}
				s.data[root][string(k)] = rec
				return nil
			})
		})
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// splitPath splits "products/abc" into root and id. A bare root has an
// empty id.
func splitPath(path string) (root, id string, err error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", "", errors.New("empty store path")
	}
	parts := strings.SplitN(path, "/", 2)
	root = parts[0]
	if len(parts) == 2 {
		id = parts[1]
		if id == "" || strings.Contains(id, "/") {
			return "", "", errors.Errorf("invalid store path %q", path)
		}
	}
	return root, id, nil
}

// Append adds a record under a top-level path and returns the generated id.
func (s *Store) Append(path string, rec domain.Record) (string, error) {
	root, id, err := splitPath(path)
	if err != nil {
		return "", err
	}
	if id != "" {
		return "", errors.Errorf("append targets a top-level path, got %q", path)
	}
	id = s.node.Generate().String()
	if err := s.put(root, id, cloneRecord(rec)); err != nil {
		return "", err
	}
	return id, nil
}

// Set overwrites the record at root/id, creating it if absent.
func (s *Store) Set(path string, rec domain.Record) error {
	root, id, err := splitPath(path)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.Errorf("set targets a record path, got %q", path)
	}
	return s.put(root, id, cloneRecord(rec))
}

// Update shallow-merges partial into the record at root/id. Missing records
// are created, matching the hosted-store semantics the catalog was built
// against.
func (s *Store) Update(path string, partial domain.Record) error {
	root, id, err := splitPath(path)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.Errorf("update targets a record path, got %q", path)
	}

	s.mu.Lock()
	merged := cloneRecord(s.data[root][id])
	if merged == nil {
		merged = make(domain.Record, len(partial))
	}
	for k, v := range partial {
		merged[k] = v
	}
	s.mu.Unlock()

	return s.put(root, id, merged)
}

// Remove deletes the record at root/id, or the whole subtree for a bare
// root path. Irreversible.
func (s *Store) Remove(path string) error {
	root, id, err := splitPath(path)
	if err != nil {
		return err
	}

	if id == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.data, root)
		err = s.db.Update(func(tx *bolt.Tx) error {
			if tx.Bucket([]byte(root)) == nil {
				return nil
			}
			return tx.DeleteBucket([]byte(root))
		})
		s.notifyLocked(root)
		return errors.Wrapf(err, "remove subtree %s", root)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if recs, ok := s.data[root]; ok {
		delete(recs, id)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(root))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		return errors.Wrapf(err, "remove %s/%s", root, id)
	}
	s.notifyLocked(root)
	return nil
}

// Get returns a copy of a single record.
func (s *Store) Get(path string) (domain.Record, error) {
	root, id, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.Errorf("get targets a record path, got %q", path)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[root][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// SnapshotAt returns a full copy of the subtree at path.
func (s *Store) SnapshotAt(path string) (Snapshot, error) {
	root, id, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id != "" {
		snap := Snapshot{}
		if rec, ok := s.data[root][id]; ok {
			snap[id] = cloneRecord(rec)
		}
		return snap, nil
	}
	return s.snapshotLocked(root), nil
}

func (s *Store) put(root, id string, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(root))
		if err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return errors.Wrapf(err, "write %s/%s", root, id)
	}

	if s.data[root] == nil {
		s.data[root] = make(map[string]domain.Record)
	}
	s.data[root][id] = rec

	s.notifyLocked(root)
	return nil
}

// snapshotLocked copies the subtree under the held lock.
func (s *Store) snapshotLocked(root string) Snapshot {
	recs := s.data[root]
	snap := make(Snapshot, len(recs))
	for id, rec := range recs {
		snap[id] = cloneRecord(rec)
	}
	return snap
}

// notifyLocked publishes the post-mutation state of every subscribed path
// under root. Root subscribers get the full subtree, single-record
// subscribers get their record or an empty snapshot once it is gone.
func (s *Store) notifyLocked(root string) {
	for path, topics := range s.subs {
		r, id, err := splitPath(path)
		if err != nil || r != root {
			continue
		}
		var snap Snapshot
		if id == "" {
			snap = s.snapshotLocked(root)
		} else {
			snap = Snapshot{}
			if rec, ok := s.data[root][id]; ok {
				snap[id] = cloneRecord(rec)
			}
		}
		for topic := range topics {
			s.bus.Publish(topic, snap)
		}
	}
}

// nextTopicLocked mints a bus topic unique to one subscription, so
// unsubscribing one consumer can never detach another on the same path.
func (s *Store) nextTopicLocked(path string) string {
	s.subSeq++
	return fmt.Sprintf("store:%s#%d", path, s.subSeq)
}

func cloneRecord(rec domain.Record) domain.Record {
	if rec == nil {
		return nil
	}
	out := make(domain.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
