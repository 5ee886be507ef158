package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoWaitlistStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ref := DefaultDocumentRef()
	ns := "referrly." + ref.Collection

	mt.Run("found document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: ref.ID},
			{Key: "emails", Value: bson.A{"a@x.com", "b@y.com"}},
		}))

		doc, found, err := NewMongoWaitlistStore(mt.DB).GetDocument(context.Background(), ref)

		assert.NoError(mt, err)
		assert.True(mt, found)
		assert.Equal(mt, []string{"a@x.com", "b@y.com"}, doc.Emails)
	})

	mt.Run("missing document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		doc, found, err := NewMongoWaitlistStore(mt.DB).GetDocument(context.Background(), ref)

		assert.NoError(mt, err)
		assert.False(mt, found)
		assert.Nil(mt, doc)
	})

	mt.Run("append upserts with addToSet", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := NewMongoWaitlistStore(mt.DB).AppendEmail(context.Background(), ref, "a@x.com")

		assert.NoError(mt, err)
	})

	mt.Run("create upserts with addToSet each", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: ref.ID}}}},
		))

		err := NewMongoWaitlistStore(mt.DB).CreateDocument(context.Background(), ref, []string{"a@x.com"})

		assert.NoError(mt, err)
	})

	mt.Run("server error is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "server shutting down",
		}))

		err := NewMongoWaitlistStore(mt.DB).AppendEmail(context.Background(), ref, "a@x.com")

		assert.Error(mt, err)
	})
}
