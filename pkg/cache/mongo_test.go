package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	docs map[string]mongoEntry
	err  error
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if f.err != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, f.err, nil)
	}
	doc, ok := f.docs[filter.(bson.M)["_id"].(string)]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) ReplaceOne(_ context.Context, filter, replacement any, _ ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs[filter.(bson.M)["_id"].(string)] = replacement.(mongoEntry)
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(_ context.Context, filter any, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.docs, filter.(bson.M)["_id"].(string))
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func TestMongoCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	coll := &fakeCollection{docs: map[string]mongoEntry{}}
	c := &MongoCache{coll: coll, now: func() time.Time { return now }}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("miss: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("svg"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if exp := coll.docs["k"].ExpiresAt; exp == nil || !exp.Equal(now.Add(time.Hour)) {
		t.Errorf("expires_at = %v", exp)
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "svg" {
		t.Errorf("hit: data=%q hit=%v err=%v", data, hit, err)
	}

	now = now.Add(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired document should miss before the TTL monitor removes it")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if coll.docs["forever"].ExpiresAt != nil {
		t.Error("zero ttl should not set expires_at")
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Fatal(err)
	}
	if _, ok := coll.docs["forever"]; ok {
		t.Error("document should be deleted")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close without client: %v", err)
	}
}

func TestMongoCacheBackendError(t *testing.T) {
	c := &MongoCache{coll: &fakeCollection{err: errors.New("server selection timeout")}, now: time.Now}

	if _, _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrBackend) || !IsRetryable(err) {
		t.Errorf("Get error = %v", err)
	}
	if err := c.Set(context.Background(), "k", []byte("x"), 0); !IsRetryable(err) {
		t.Errorf("Set error = %v", err)
	}
}
