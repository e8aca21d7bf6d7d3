package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Each session lives in a hash; a set
// of claimed player ids backs collision probes, and a sorted set scored by
// last use backs window counts and reap sweeps. The window checks in Touch
// and the reaper run as Lua scripts so the check and the mutation are one
// atomic unit and a concurrent touch always beats a concurrent reap.
//
// Sessions are never given TTLs: an idle session stays in Redis, and keeps
// its player id claimed, until a sweep physically removes it.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// Redis key layout, relative to the store prefix.
const (
	redisDefaultPrefix = "lobby"
	redisSessionKey    = "%s:session:%s" // hash: one session record
	redisPlayersKey    = "%s:player_ids" // set: claimed player ids
	redisByUseKey      = "%s:by_use"     // zset: session id scored by last use
	redisCounterKey    = "%s:player_seq" // string: player id counter
)

// createScript claims the player id and writes the session in one step.
// Returns 0 without writing anything when the id is already claimed.
var createScript = redis.NewScript(`
	if redis.call('SADD', KEYS[2], ARGV[2]) == 0 then
		return 0
	end
	redis.call('HSET', KEYS[1],
		'session_id', ARGV[1],
		'player_id', ARGV[2],
		'player_name', ARGV[3],
		'num_ships', ARGV[4],
		'session_started', ARGV[5],
		'session_used', ARGV[6])
	redis.call('ZADD', KEYS[3], tonumber(ARGV[6]), ARGV[1])
	return 1
`)

// touchScript slides the activity clock iff the session is still inside the
// window. Returns the refreshed hash, or nil for missing/idle sessions.
var touchScript = redis.NewScript(`
	local used = redis.call('ZSCORE', KEYS[2], ARGV[1])
	if not used or tonumber(used) < tonumber(ARGV[3]) then
		return nil
	end
	redis.call('HSET', KEYS[1], 'session_used', ARGV[2])
	redis.call('ZADD', KEYS[2], tonumber(ARGV[2]), ARGV[1])
	return redis.call('HGETALL', KEYS[1])
`)

// deleteScript removes a session and its player id claim, returning the
// removed hash so the caller can release the id.
var deleteScript = redis.NewScript(`
	local fields = redis.call('HGETALL', KEYS[1])
	if #fields == 0 then
		return nil
	end
	local player = redis.call('HGET', KEYS[1], 'player_id')
	redis.call('DEL', KEYS[1])
	redis.call('ZREM', KEYS[2], ARGV[1])
	redis.call('SREM', KEYS[3], player)
	return fields
`)

// reapScript deletes one candidate session iff it is still idle at execution
// time, so a touch that landed after the sweep's scan is respected. Returns
// the freed player id, or nil when the session was touched or already gone.
var reapScript = redis.NewScript(`
	local used = redis.call('ZSCORE', KEYS[2], ARGV[1])
	if not used or tonumber(used) >= tonumber(ARGV[2]) then
		return nil
	end
	local player = redis.call('HGET', KEYS[1], 'player_id')
	redis.call('DEL', KEYS[1])
	redis.call('ZREM', KEYS[2], ARGV[1])
	if player then
		redis.call('SREM', KEYS[3], player)
	end
	return player
`)

// NewRedisStore creates a Redis-backed session store. All keys are namespaced
// under prefix; pass an empty string for the default.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = redisDefaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) sessionKey(id uuid.UUID) string {
	return fmt.Sprintf(redisSessionKey, s.prefix, id)
}

func (s *RedisStore) playersKey() string { return fmt.Sprintf(redisPlayersKey, s.prefix) }
func (s *RedisStore) byUseKey() string   { return fmt.Sprintf(redisByUseKey, s.prefix) }
func (s *RedisStore) counterKey() string { return fmt.Sprintf(redisCounterKey, s.prefix) }

// Create stores a new session and claims its player id
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == uuid.Nil {
		return ErrInvalidSession
	}

	created, err := createScript.Run(ctx, s.client,
		[]string{s.sessionKey(session.ID), s.playersKey(), s.byUseKey()},
		session.ID.String(),
		session.PlayerID,
		session.PlayerName,
		session.NumShips,
		session.StartedAt.UnixMilli(),
		session.UsedAt.UnixMilli(),
	).Int()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if created == 0 {
		return ErrDuplicatePlayerID
	}

	return nil
}

// Get retrieves a session by id without touching it
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, s.sessionKey(id)).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	return sessionFromRedisMap(fields)
}

// Touch atomically validates the activity window and slides it to now
func (s *RedisStore) Touch(ctx context.Context, id uuid.UUID, now, cutoff time.Time) (*Session, error) {
	reply, err := touchScript.Run(ctx, s.client,
		[]string{s.sessionKey(id), s.byUseKey()},
		id.String(),
		now.UnixMilli(),
		cutoff.UnixMilli(),
	).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return sessionFromRedisReply(reply)
}

// Delete removes a session and returns the removed record
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) (*Session, error) {
	reply, err := deleteScript.Run(ctx, s.client,
		[]string{s.sessionKey(id), s.byUseKey(), s.playersKey()},
		id.String(),
	).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return sessionFromRedisReply(reply)
}

// DeleteIdle removes sessions last used before cutoff. Candidates come
// from one sorted-set scan; each deletion re-checks the window so sessions
// touched mid-sweep survive.
func (s *RedisStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	candidates, err := s.client.ZRangeByScore(ctx, s.byUseKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var freed []string
	for _, rawID := range candidates {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}

		playerID, err := reapScript.Run(ctx, s.client,
			[]string{s.sessionKey(id), s.byUseKey(), s.playersKey()},
			rawID,
			cutoff.UnixMilli(),
		).Text()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return freed, errors.Join(ErrStoreFailure, err)
		}

		freed = append(freed, playerID)
	}

	return freed, nil
}

// Count returns the number of sessions used at or after cutoff
func (s *RedisStore) Count(ctx context.Context, cutoff time.Time) (int, error) {
	count, err := s.client.ZCount(ctx, s.byUseKey(),
		strconv.FormatInt(cutoff.UnixMilli(), 10),
		"+inf",
	).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return int(count), nil
}

// PlayerIDInUse reports whether any session, idle or not, claims the id
func (s *RedisStore) PlayerIDInUse(ctx context.Context, playerID string) (bool, error) {
	claimed, err := s.client.SIsMember(ctx, s.playersKey(), playerID).Result()
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}

	return claimed, nil
}

// PlayerIDs returns every claimed player id
func (s *RedisStore) PlayerIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.playersKey()).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return ids, nil
}

// NextPlayerID returns the next value of the shared counter
func (s *RedisStore) NextPlayerID(ctx context.Context) (uint64, error) {
	next, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return uint64(next), nil
}

// sessionFromRedisReply converts a Lua HGETALL reply (a flat field/value
// array) into a Session.
func sessionFromRedisReply(reply any) (*Session, error) {
	flat, ok := reply.([]any)
	if !ok || len(flat)%2 != 0 {
		return nil, errors.Join(ErrStoreFailure, fmt.Errorf("unexpected reply type %T", reply))
	}

	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		key, kok := flat[i].(string)
		value, vok := flat[i+1].(string)
		if !kok || !vok {
			return nil, errors.Join(ErrStoreFailure, fmt.Errorf("unexpected field pair %T/%T", flat[i], flat[i+1]))
		}
		fields[key] = value
	}

	return sessionFromRedisMap(fields)
}

func sessionFromRedisMap(fields map[string]string) (*Session, error) {
	id, err := uuid.Parse(fields["session_id"])
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	started, err := strconv.ParseInt(fields["session_started"], 10, 64)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	used, err := strconv.ParseInt(fields["session_used"], 10, 64)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return &Session{
		ID:         id,
		PlayerID:   fields["player_id"],
		PlayerName: fields["player_name"],
		NumShips:   fields["num_ships"],
		StartedAt:  time.UnixMilli(started).UTC(),
		UsedAt:     time.UnixMilli(used).UTC(),
	}, nil
}
