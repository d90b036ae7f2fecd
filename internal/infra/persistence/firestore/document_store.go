// Package firestore implements the DocumentStore port on Cloud Firestore.
package firestore

import (
	"context"
	"strings"

	"vitrine/internal/domain/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type documentStore struct {
	client *firestore.Client
}

// New initializes a Firebase app from the service-account credentials file
// and returns a DocumentStore backed by its Firestore database.
func New(ctx context.Context, projectID, credentialsPath string) (repository.DocumentStore, func() error, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get Firestore client")
	}

	return &documentStore{client: client}, client.Close, nil
}

func (s *documentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrDocumentNotFound
		}

		return nil, errors.Wrapf(err, "failed to get document %s/%s", collection, id)
	}

	return repository.Document(snap.Data()), nil
}

func (s *documentStore) Set(ctx context.Context, collection, id string, doc repository.Document) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]any(doc)); err != nil {
		return errors.Wrapf(err, "failed to set document %s/%s", collection, id)
	}

	return nil
}

func (s *documentStore) Create(ctx context.Context, collection, id string, doc repository.Document) error {
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, map[string]any(doc)); err != nil {
		return errors.Wrapf(err, "failed to create document %s/%s", collection, id)
	}

	return nil
}

func (s *documentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{
			FieldPath: strings.Split(path, "."),
			Value:     value,
		})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrDocumentNotFound
		}

		return errors.Wrapf(err, "failed to update document %s/%s", collection, id)
	}

	return nil
}

func (s *documentStore) Query(ctx context.Context, collection string, filters []repository.Filter) ([]repository.Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range filters {
		query = query.WherePath(strings.Split(f.Path, "."), "==", f.Value)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query collection %s", collection)
	}

	docs := make([]repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, repository.Document(snap.Data()))
	}

	return docs, nil
}

func (s *documentStore) Subscribe(ctx context.Context, collection, id string, onChange func(repository.Document)) (repository.Subscription, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	iter := s.client.Collection(collection).Doc(id).Snapshots(watchCtx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				return
			}
			if snap.Exists() {
				onChange(repository.Document(snap.Data()))
			}
		}
	}()

	return subscriptionFunc(cancel), nil
}

type subscriptionFunc func()

func (f subscriptionFunc) Unsubscribe() { f() }
