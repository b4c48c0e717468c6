package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used across the application.
const (
	CollectionUsers    = "users"
	CollectionPatients = "patients"
	CollectionSessions = "sessions"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Document is a stored record together with its collection key.
type Document struct {
	Key  string
	Data map[string]interface{}
}

// Store is the document-database contract the application is written
// against. Create must be atomic create-if-absent: concurrent calls with
// the same key must yield exactly one success and ErrAlreadyExists for
// the rest.
type Store interface {
	// Get returns the document at key or ErrNotFound.
	Get(ctx context.Context, collection, key string) (*Document, error)
	// Set writes the document at key, replacing any existing content.
	Set(ctx context.Context, collection, key string, data map[string]interface{}) error
	// Create writes the document at key only if no document exists there.
	Create(ctx context.Context, collection, key string, data map[string]interface{}) error
	// Update merges fields into the document at key. A nil field value
	// clears the field. Returns ErrNotFound if the document is absent.
	Update(ctx context.Context, collection, key string, fields map[string]interface{}) error
	// Add writes a document under a store-generated key and returns it.
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	// Delete removes the document at key. Deleting an absent document is
	// not an error.
	Delete(ctx context.Context, collection, key string) error
	// Query returns all documents whose field equals value.
	Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error)
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)
}

// Encode converts a typed record into the map form the store accepts.
// Timestamps become RFC 3339 strings so all backends agree on the wire
// representation.
func Encode(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode unmarshals a document into a typed record.
func Decode(doc *Document, v interface{}) error {
	b, err := json.Marshal(doc.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
