package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store on MongoDB. Player id uniqueness comes from a
// unique index, the id counter from an atomically incremented counter
// document, and the window checks in Touch and the reaper from filtered
// single-document operations, so a touch that lands before the reaper's
// delete always wins.
type MongoStore struct {
	sessions *mongo.Collection
	counters *mongo.Collection
}

// Collection names used by MongoStore.
const (
	mongoSessionsCollection = "player_sessions"
	mongoCountersCollection = "counters"
	mongoPlayerIDCounter    = "player_id"
)

// mongoSession mirrors Session with the session id as the document key.
type mongoSession struct {
	ID         string    `bson:"_id"`
	PlayerID   string    `bson:"player_id"`
	PlayerName string    `bson:"player_name"`
	NumShips   string    `bson:"num_ships"`
	StartedAt  time.Time `bson:"session_started"`
	UsedAt     time.Time `bson:"session_used"`
}

func (d *mongoSession) toSession() (*Session, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return &Session{
		ID:         id,
		PlayerID:   d.PlayerID,
		PlayerName: d.PlayerName,
		NumShips:   d.NumShips,
		StartedAt:  d.StartedAt.UTC(),
		UsedAt:     d.UsedAt.UTC(),
	}, nil
}

// NewMongoStore creates a MongoDB-backed session store over the given
// database. Call EnsureIndexes once at startup before serving traffic.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		sessions: db.Collection(mongoSessionsCollection),
		counters: db.Collection(mongoCountersCollection),
	}
}

// EnsureIndexes creates the unique player id index backing the claim
// semantics of Create. Safe to call repeatedly.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "player_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}

// Create stores a new session and claims its player id
func (s *MongoStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == uuid.Nil {
		return ErrInvalidSession
	}

	_, err := s.sessions.InsertOne(ctx, mongoSession{
		ID:         session.ID.String(),
		PlayerID:   session.PlayerID,
		PlayerName: session.PlayerName,
		NumShips:   session.NumShips,
		StartedAt:  session.StartedAt,
		UsedAt:     session.UsedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicatePlayerID
		}
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}

// Get retrieves a session by id without touching it
func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var doc mongoSession
	err := s.sessions.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return doc.toSession()
}

// Touch atomically validates the activity window and slides it to now
func (s *MongoStore) Touch(ctx context.Context, id uuid.UUID, now, cutoff time.Time) (*Session, error) {
	var doc mongoSession
	err := s.sessions.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String(), "session_used": bson.M{"$gte": cutoff}},
		bson.M{"$set": bson.M{"session_used": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return doc.toSession()
}

// Delete removes a session and returns the removed record
func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) (*Session, error) {
	var doc mongoSession
	err := s.sessions.FindOneAndDelete(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return doc.toSession()
}

// DeleteIdle removes sessions last used before cutoff. Candidates come
// from one scan; each delete re-checks the window in its filter so sessions
// touched mid-sweep survive.
func (s *MongoStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	cursor, err := s.sessions.Find(ctx,
		bson.M{"session_used": bson.M{"$lt": cutoff}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var candidates []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var freed []string
	for _, candidate := range candidates {
		var doc mongoSession
		err := s.sessions.FindOneAndDelete(ctx, bson.M{
			"_id":          candidate.ID,
			"session_used": bson.M{"$lt": cutoff},
		}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return freed, errors.Join(ErrStoreFailure, err)
		}

		freed = append(freed, doc.PlayerID)
	}

	return freed, nil
}

// Count returns the number of sessions used at or after cutoff
func (s *MongoStore) Count(ctx context.Context, cutoff time.Time) (int, error) {
	count, err := s.sessions.CountDocuments(ctx, bson.M{"session_used": bson.M{"$gte": cutoff}})
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return int(count), nil
}

// PlayerIDInUse reports whether any session, idle or not, claims the id
func (s *MongoStore) PlayerIDInUse(ctx context.Context, playerID string) (bool, error) {
	count, err := s.sessions.CountDocuments(ctx,
		bson.M{"player_id": playerID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}

	return count > 0, nil
}

// PlayerIDs returns every claimed player id
func (s *MongoStore) PlayerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.sessions.Distinct(ctx, "player_id", bson.D{}).Decode(&ids); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return ids, nil
}

// NextPlayerID returns the next value of the shared counter document
func (s *MongoStore) NextPlayerID(ctx context.Context) (uint64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": mongoPlayerIDCounter},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return uint64(counter.Value), nil
}
