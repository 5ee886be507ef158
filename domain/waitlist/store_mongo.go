package waitlist

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDocument struct {
	ID     string   `bson:"_id"`
	Emails []string `bson:"emails"`
}

type mongoWaitlistStore struct {
	db *mongo.Database
}

// NewMongoWaitlistStore stores the set as an array field and appends with $addToSet.
func NewMongoWaitlistStore(db *mongo.Database) WaitlistStore {
	return &mongoWaitlistStore{db: db}
}

func (s *mongoWaitlistStore) collection(ref DocumentRef) *mongo.Collection {
	return s.db.Collection(ref.Collection)
}

func (s *mongoWaitlistStore) GetDocument(ctx context.Context, ref DocumentRef) (*Document, bool, error) {
	var doc mongoDocument

	err := s.collection(ref).FindOne(ctx, bson.M{"_id": ref.ID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &Document{Ref: ref, Emails: doc.Emails}, true, nil
}

func (s *mongoWaitlistStore) CreateDocument(ctx context.Context, ref DocumentRef, emails []string) error {
	return s.addToSet(ctx, ref, bson.M{"emails": bson.M{"$each": emails}})
}

func (s *mongoWaitlistStore) AppendEmail(ctx context.Context, ref DocumentRef, email string) error {
	return s.addToSet(ctx, ref, bson.M{"emails": email})
}

func (s *mongoWaitlistStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Upsert makes create and append the same server-side union.
func (s *mongoWaitlistStore) addToSet(ctx context.Context, ref DocumentRef, fields bson.M) error {
	_, err := s.collection(ref).UpdateOne(
		ctx,
		bson.M{"_id": ref.ID},
		bson.M{"$addToSet": fields},
		options.Update().SetUpsert(true),
	)
	return err
}
