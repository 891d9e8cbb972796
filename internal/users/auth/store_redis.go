// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Each session is a JSON value under inkwell:session:<hash> expiring with the
// session. A per-user set indexes the hashes for [RedisSessionRepository.RevokeAll].
type RedisSessionRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewSessionRepository creates a Redis-backed SessionRepository.
func NewSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, now: time.Now}
}

var _ SessionRepository = (*RedisSessionRepository)(nil)

func sessionKey(tokenHash string) string { return constants.RedisPrefixSession + tokenHash }
func userKey(userID string) string       { return constants.RedisPrefixUserSession + userID }

/*
Create stores the session with a TTL matching its expiry.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Expired sessions or Redis failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	ttl := session.ExpiresAt.Sub(repository.now())
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	payload, err := json.Marshal(storedSession{Session: session, TokenHash: session.TokenHash})
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, sessionKey(session.TokenHash), payload, ttl)
		pipe.SAdd(context, userKey(session.UserID), session.TokenHash)
		pipe.Expire(context, userKey(session.UserID), RefreshTokenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	return decodeSession(repository.client.Get(context, sessionKey(tokenHash)).Bytes())
}

// Consume reads and deletes the session with GETDEL, so a refresh token
// can be exchanged once even under concurrent requests.
func (repository *RedisSessionRepository) Consume(context context.Context, tokenHash string) (*Session, error) {
	session, err := decodeSession(repository.client.GetDel(context, sessionKey(tokenHash)).Bytes())
	if err != nil {
		return nil, err
	}

	if err := repository.client.SRem(context, userKey(session.UserID), tokenHash).Err(); err != nil {
		return nil, fmt.Errorf("redis_session_unindex_failed: %w", err)
	}
	return session, nil
}

func decodeSession(payload []byte, err error) (*Session, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	stored.Session.TokenHash = stored.TokenHash
	return stored.Session, nil
}

func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil
		}
		return err
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Del(context, sessionKey(tokenHash))
		pipe.SRem(context, userKey(session.UserID), tokenHash)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	hashes, err := repository.client.SMembers(context, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_list_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userKey(userID))

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}
	return nil
}

// storedSession keeps the hash, which Session hides from API responses.
type storedSession struct {
	*Session
	TokenHash string `json:"token_hash"`
}
