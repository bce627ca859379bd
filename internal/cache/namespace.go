package cache

import (
	"container/list"
	"reflect"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Entry is a resident cache value with its bookkeeping.
type Entry struct {
	Key        string
	Value      any
	InsertedAt time.Time
	TTL        time.Duration
}

// namespace pairs a go-cache store (TTL) with an LRU list (size bound).
// All bookkeeping happens under mu, so an entry is either fully visible or
// absent.
//
// Invalidation bumps version. A compute records the version it started at
// and is only stored if no invalidation touching its key happened since;
// marks are only kept while computes are in flight.
type namespace struct {
	name Name
	cfg  NamespaceConfig

	mu    sync.Mutex
	store *gocache.Cache
	order *list.List
	elems map[string]*list.Element

	version    uint64
	clearedAt  uint64
	keyMarks   map[string]uint64
	scopeMarks map[string]uint64
	flights    map[string]int
	group      singleflight.Group

	hits          uint64
	misses        uint64
	invalidations uint64
	evictions     uint64
}

func newNamespace(name Name, cfg NamespaceConfig) *namespace {
	return &namespace{
		name: name,
		cfg:  cfg,
		// Cleanup interval 0: no janitor goroutine, expiry is lazy.
		store:      gocache.New(cfg.TTL, 0),
		order:      list.New(),
		elems:      make(map[string]*list.Element),
		keyMarks:   make(map[string]uint64),
		scopeMarks: make(map[string]uint64),
		flights:    make(map[string]int),
	}
}

func (n *namespace) get(key string) (Entry, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, ok, err := n.lookupLocked(key)
	if err != nil {
		return Entry{}, false, err
	}
	if ok {
		n.hits++
	} else {
		n.misses++
	}
	return entry, ok, nil
}

func (n *namespace) put(key string, value any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.putLocked(key, value)
}

func (n *namespace) getOrCompute(key string, fn func() (any, error)) (any, error) {
	n.mu.Lock()
	entry, ok, err := n.lookupLocked(key)
	if err != nil {
		n.mu.Unlock()
		return nil, err
	}
	if ok {
		n.hits++
		n.mu.Unlock()
		return entry.Value, nil
	}
	n.misses++
	n.mu.Unlock()

	v, err, _ := n.group.Do(key, func() (any, error) {
		start, cached, found, err := n.beginCompute(key)
		if err != nil {
			return nil, err
		}
		defer n.endCompute(key)
		if found {
			return cached, nil
		}

		val, err := fn()
		if err != nil || isNil(val) {
			return val, err
		}
		if err := n.storeIfFresh(key, val, start); err != nil {
			return nil, err
		}
		return val, nil
	})
	return v, err
}

func (n *namespace) invalidate(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.removeLocked(key)
	n.version++
	if len(n.flights) > 0 {
		n.keyMarks[key] = n.version
	}
	n.invalidations++
	n.group.Forget(key)
}

// invalidateScope drops every key belonging to scope (see Key).
func (n *namespace) invalidateScope(scope string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefix := scope + keySep
	for key := range n.elems {
		if key == scope || strings.HasPrefix(key, prefix) {
			n.removeLocked(key)
		}
	}
	n.version++
	if len(n.flights) > 0 {
		n.scopeMarks[scope] = n.version
	}
	n.invalidations++
	for key := range n.flights {
		if scopeOf(key) == scope {
			n.group.Forget(key)
		}
	}
}

func (n *namespace) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.store.Flush()
	n.order.Init()
	n.elems = make(map[string]*list.Element)
	n.version++
	n.clearedAt = n.version
	for key := range n.flights {
		n.group.Forget(key)
	}
}

func (n *namespace) size() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.purgeExpiredLocked()
	return n.order.Len()
}

func (n *namespace) stats() NamespaceStats {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.purgeExpiredLocked()
	return newNamespaceStats(n.name, n.cfg, n.order.Len(), n.hits, n.misses, n.invalidations, n.evictions)
}

func (n *namespace) lookupLocked(key string) (Entry, bool, error) {
	raw, ok := n.store.Get(key)
	elem, tracked := n.elems[key]
	if !ok {
		if tracked {
			// expired in the store; drop the order record too
			n.order.Remove(elem)
			delete(n.elems, key)
		}
		return Entry{}, false, nil
	}
	if !tracked {
		return Entry{}, false, n.corrupt(key, "resident entry has no order record")
	}
	entry, isEntry := raw.(Entry)
	if !isEntry {
		return Entry{}, false, n.corrupt(key, "resident value is not a cache entry")
	}
	n.order.MoveToFront(elem)
	return entry, true, nil
}

func (n *namespace) putLocked(key string, value any) error {
	if elem, ok := n.elems[key]; ok {
		n.order.MoveToFront(elem)
	} else {
		if n.order.Len() >= n.cfg.MaxSize {
			n.purgeExpiredLocked()
		}
		for n.order.Len() >= n.cfg.MaxSize {
			n.evictOldestLocked()
		}
		n.elems[key] = n.order.PushFront(key)
	}
	n.store.Set(key, Entry{
		Key:        key,
		Value:      value,
		InsertedAt: time.Now(),
		TTL:        n.cfg.TTL,
	}, gocache.DefaultExpiration)
	return n.checkLocked()
}

func (n *namespace) removeLocked(key string) {
	if elem, ok := n.elems[key]; ok {
		n.order.Remove(elem)
		delete(n.elems, key)
	}
	n.store.Delete(key)
}

func (n *namespace) evictOldestLocked() {
	back := n.order.Back()
	if back == nil {
		return
	}
	key := back.Value.(string)
	n.order.Remove(back)
	delete(n.elems, key)
	n.store.Delete(key)
	n.evictions++
}

func (n *namespace) purgeExpiredLocked() {
	n.store.DeleteExpired()
	for e := n.order.Back(); e != nil; {
		prev := e.Prev()
		key := e.Value.(string)
		if _, ok := n.store.Get(key); !ok {
			n.order.Remove(e)
			delete(n.elems, key)
		}
		e = prev
	}
}

func (n *namespace) checkLocked() error {
	if n.order.Len() != len(n.elems) {
		return n.corrupt("", "order list and index disagree")
	}
	if n.order.Len() > n.cfg.MaxSize {
		return n.corrupt("", "resident entries exceed max size")
	}
	return nil
}

// beginCompute registers an in-flight compute and returns the version it
// started at. If another flight stored the key meanwhile, that value is
// returned with found=true.
func (n *namespace) beginCompute(key string) (start uint64, cached any, found bool, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.flights[key]++
	entry, ok, err := n.lookupLocked(key)
	if err != nil {
		n.flights[key]--
		if n.flights[key] == 0 {
			delete(n.flights, key)
		}
		return 0, nil, false, err
	}
	return n.version, entry.Value, ok, nil
}

func (n *namespace) endCompute(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.flights[key]--
	if n.flights[key] <= 0 {
		delete(n.flights, key)
	}
	if len(n.flights) == 0 {
		clear(n.keyMarks)
		clear(n.scopeMarks)
	}
}

func (n *namespace) storeIfFresh(key string, value any, start uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.clearedAt > start || n.keyMarks[key] > start || n.scopeMarks[scopeOf(key)] > start {
		return nil
	}
	return n.putLocked(key, value)
}

func (n *namespace) corrupt(key, reason string) error {
	return &CorruptionError{Namespace: n.name, Key: key, Reason: reason}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
