package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store used by tests and local development.
// All mutations hold the store mutex, so Create is atomic like the real
// backends.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{Key: key, Data: cloneData(data)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coll(collection)[key] = cloneData(data)
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, collection, key string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.coll(collection)
	if _, ok := coll[key]; ok {
		return ErrAlreadyExists
	}
	coll[key] = cloneData(data)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][key]
	if !ok {
		return ErrNotFound
	}
	for k, v := range cloneData(fields) {
		data[k] = v
	}
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.NewString()
	s.coll(collection)[key] = cloneData(data)
	return key, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], key)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for key, data := range s.collections[collection] {
		if reflect.DeepEqual(data[field], normalize(value)) {
			docs = append(docs, Document{Key: key, Data: cloneData(data)})
		}
	}
	return docs, nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for key, data := range s.collections[collection] {
		docs = append(docs, Document{Key: key, Data: cloneData(data)})
	}
	return docs, nil
}

func (s *MemoryStore) coll(collection string) map[string]map[string]interface{} {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]map[string]interface{})
		s.collections[collection] = coll
	}
	return coll
}

// cloneData deep-copies through JSON so callers never share memory with
// the store, matching the value semantics of the remote backends.
func cloneData(data map[string]interface{}) map[string]interface{} {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

// normalize converts a query value into its JSON representation so
// comparisons behave the same as in the real backends.
func normalize(value interface{}) interface{} {
	b, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return value
	}
	return out
}
