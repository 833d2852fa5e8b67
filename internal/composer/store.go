package composer

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"mixin-composer/internal/definition"
)

// store maps class context keys to built definitions.
type store interface {
	get(key string) (*definition.TargetClassDefinition, bool)
	// install adds def unless key is present and returns the stored value;
	// added is false when another definition was there first.
	install(key string, def *definition.TargetClassDefinition) (stored *definition.TargetClassDefinition, added bool)
	len() int
	purge()
}

// mapStore keeps every definition.
type mapStore struct {
	mu   sync.Mutex
	defs map[string]*definition.TargetClassDefinition
}

func newMapStore() *mapStore {
	return &mapStore{defs: make(map[string]*definition.TargetClassDefinition)}
}

func (s *mapStore) get(key string) (*definition.TargetClassDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.defs[key]

	return def, ok
}

func (s *mapStore) install(key string, def *definition.TargetClassDefinition) (*definition.TargetClassDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.defs[key]; ok {
		return existing, false
	}

	s.defs[key] = def

	return def, true
}

func (s *mapStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.defs)
}

func (s *mapStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.defs)
}

// lruStore keeps at most size definitions, evicting the least recently used.
// The cache is safe for concurrent use on its own.
type lruStore struct {
	cache *lru.Cache[string, *definition.TargetClassDefinition]
}

func newLRUStore(size int) (*lruStore, error) {
	cache, err := lru.New[string, *definition.TargetClassDefinition](size)
	if err != nil {
		return nil, err
	}

	return &lruStore{cache: cache}, nil
}

func (s *lruStore) get(key string) (*definition.TargetClassDefinition, bool) {
	return s.cache.Get(key)
}

func (s *lruStore) install(key string, def *definition.TargetClassDefinition) (*definition.TargetClassDefinition, bool) {
	if existing, ok, _ := s.cache.PeekOrAdd(key, def); ok {
		return existing, false
	}

	return def, true
}

func (s *lruStore) len() int { return s.cache.Len() }

func (s *lruStore) purge() { s.cache.Purge() }
