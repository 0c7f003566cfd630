package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobmatch/internal/common"
	"jobmatch/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const collectionsName = "collections"

type document struct {
	Name      string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store keeps each collection as one document keyed by collection name.
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionsName)}
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, bool, error) {
	var doc document
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, common.NewError(common.CodeInternal, "failed to load collection "+name, err)
	}
	return doc.Payload, true, nil
}

func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	doc := document{Name: name, Payload: blob, UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save collection "+name, err)
	}
	return nil
}
