package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Firestore stores entities as documents in one collection, keyed by entity id.
type Firestore[T Entity] struct {
	provider   *FirestoreProvider
	collection string
}

// NewFirestore binds a repository to collection.
func NewFirestore[T Entity](provider *FirestoreProvider, collection string) (*Firestore[T], error) {
	if provider == nil {
		return nil, errors.New("firestore: provider is required")
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, errors.New("firestore: collection name is required")
	}
	return &Firestore[T]{provider: provider, collection: collection}, nil
}

// List returns every document ordered by id.
func (f *Firestore[T]) List(ctx context.Context) ([]T, error) {
	coll, err := f.collectionRef(ctx)
	if err != nil {
		return nil, err
	}
	iter := coll.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []T
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapFirestoreError(f.op("list"), err)
		}
		var entity T
		if err := snap.DataTo(&entity); err != nil {
			return nil, fmt.Errorf("firestore: decode %s/%s: %w", f.collection, snap.Ref.ID, err)
		}
		result = append(result, entity)
	}
	return result, nil
}

// Get returns the entity stored under id.
func (f *Firestore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := f.docRef(ctx, id)
	if err != nil {
		return zero, err
	}
	snap, err := doc.Get(ctx)
	if err != nil {
		return zero, wrapFirestoreError(f.op("get"), err)
	}
	var entity T
	if err := snap.DataTo(&entity); err != nil {
		return zero, fmt.Errorf("firestore: decode %s/%s: %w", f.collection, id, err)
	}
	return entity, nil
}

// Put replaces the document for the entity.
func (f *Firestore[T]) Put(ctx context.Context, entity T) error {
	doc, err := f.docRef(ctx, entity.EntityID())
	if err != nil {
		return err
	}
	if _, err := doc.Set(ctx, entity); err != nil {
		return wrapFirestoreError(f.op("put"), err)
	}
	return nil
}

// Delete removes the document; missing documents report ErrNotFound.
func (f *Firestore[T]) Delete(ctx context.Context, id string) error {
	doc, err := f.docRef(ctx, id)
	if err != nil {
		return err
	}
	if _, err := doc.Delete(ctx, firestore.Exists); err != nil {
		return wrapFirestoreError(f.op("delete"), err)
	}
	return nil
}

func (f *Firestore[T]) collectionRef(ctx context.Context) (*firestore.CollectionRef, error) {
	client, err := f.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(f.collection), nil
}

func (f *Firestore[T]) docRef(ctx context.Context, id string) (*firestore.DocumentRef, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}
	coll, err := f.collectionRef(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Doc(id), nil
}

func (f *Firestore[T]) op(action string) string {
	return f.collection + "." + action
}
