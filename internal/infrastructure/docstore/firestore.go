package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the Store contract with a managed Firestore
// database. Create maps onto Firestore's own create precondition, which
// is atomic on the server.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	logrus.Info("Successfully connected to Firestore")

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get: %w", err)
	}
	return &Document{Key: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, data map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(key).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection, key string, data map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(key).Create(ctx, data)
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("firestore create: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	ref := s.client.Collection(collection).Doc(key)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("firestore update: %w", err)
	}
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore update: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore add: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.client.Collection(collection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	snaps, err := s.client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query: %w", err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{Key: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list: %w", err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{Key: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
