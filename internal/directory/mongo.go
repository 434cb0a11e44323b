package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo reads user time zones from a collection of documents shaped like
// {_id: "U123", tz: "Europe/Madrid", tz_label: "Central European Time", tz_offset: 3600}.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

// Connect dials uri and checks the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	slog.Info("Connected to MongoDB")
	return client, nil
}

func (m *Mongo) LookupUserTimezone(ctx context.Context, userID string) (Timezone, error) {
	var tz Timezone
	err := m.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&tz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Timezone{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return Timezone{}, fmt.Errorf("lookup user %s: %w", userID, err)
	}
	slog.DebugContext(ctx, "User timezone resolved", "user", userID, "tz", tz.Name, "offset", tz.OffsetSeconds)
	return tz, nil
}

// Upsert stores or replaces a user's zone.
func (m *Mongo) Upsert(ctx context.Context, userID string, tz Timezone) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": tz},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", userID, err)
	}
	return nil
}
