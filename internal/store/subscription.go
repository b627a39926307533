package store

import "sync"

// Subscription is a live feed of full snapshots for one path. Delivery is
// latest-wins through a one-slot channel: a slow consumer never blocks
// writers and always observes the newest state next. Close must be called
// when the consuming view is torn down.
type Subscription struct {
	handler func(Snapshot)
	detach  func()
	c       chan Snapshot

	mu     sync.Mutex
	closed bool
}

// Subscribe attaches to a path and immediately delivers the current full
// snapshot, then one snapshot per mutation anywhere under the path. Each
// subscription rides its own bus topic so teardown never detaches a
// sibling on the same path. The attach snapshot and handler registration
// happen under the store lock so no mutation can slip between them.
func (s *Store) Subscribe(path string) (*Subscription, error) {
	root, id, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{c: make(chan Snapshot, 1)}
	sub.handler = sub.push

	s.mu.Lock()
	defer s.mu.Unlock()

	topic := s.nextTopicLocked(path)
	if err := s.bus.Subscribe(topic, sub.handler); err != nil {
		return nil, err
	}
	if s.subs[path] == nil {
		s.subs[path] = make(map[string]struct{})
	}
	s.subs[path][topic] = struct{}{}
	sub.detach = func() {
		s.mu.Lock()
		delete(s.subs[path], topic)
		if len(s.subs[path]) == 0 {
			delete(s.subs, path)
		}
		s.mu.Unlock()
		_ = s.bus.Unsubscribe(topic, sub.handler)
	}

	var snap Snapshot
	if id != "" {
		snap = Snapshot{}
		if rec, ok := s.data[root][id]; ok {
			snap[id] = cloneRecord(rec)
		}
	} else {
		snap = s.snapshotLocked(root)
	}
	sub.push(snap)
	return sub, nil
}

// Updates is the snapshot feed. The channel closes after Close.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.c
}

func (s *Subscription) push(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.c <- snap:
			return
		default:
		}
		// Slot full: drop the stale snapshot and retry.
		select {
		case <-s.c:
		default:
		}
	}
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.c)
	s.mu.Unlock()
	s.detach()
}
