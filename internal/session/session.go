// Package session keeps per-chat conversation state in Redis so the bot can
// restart without losing where each user is in the flow.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"simplelearn/pkg/domain"
)

// State is the position of a chat in the conversation flow.
type State string

const (
	StateLanguage   State = "language"
	StateContent    State = "content"
	StateProcessing State = "processing"
	StateStyle      State = "style"
)

// Pending holds extracted text waiting for the user to pick a summary
// action.
type Pending struct {
	ContentType domain.ContentType `json:"contentType"`
	FileName    string             `json:"fileName,omitempty"`
	Text        string             `json:"text"`
}

// Store persists chat state with a TTL so abandoned sessions expire.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps a Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("session:%d:state", chatID)
}

func pendingKey(chatID int64) string {
	return fmt.Sprintf("session:%d:pending", chatID)
}

// SetState records the chat's flow position.
func (s *Store) SetState(ctx context.Context, chatID int64, st State) error {
	return s.client.Set(ctx, stateKey(chatID), string(st), s.ttl).Err()
}

// State returns the chat's flow position, or empty when no session exists.
func (s *Store) State(ctx context.Context, chatID int64) (State, error) {
	val, err := s.client.Get(ctx, stateKey(chatID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return State(val), nil
}

// SetPending stores extracted text awaiting a user decision.
func (s *Store) SetPending(ctx context.Context, chatID int64, p Pending) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pendingKey(chatID), raw, s.ttl).Err()
}

// Pending returns stored extracted text, if any.
func (s *Store) Pending(ctx context.Context, chatID int64) (Pending, bool, error) {
	raw, err := s.client.Get(ctx, pendingKey(chatID)).Bytes()
	if err == redis.Nil {
		return Pending{}, false, nil
	}
	if err != nil {
		return Pending{}, false, err
	}
	var p Pending
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pending{}, false, err
	}
	return p, true, nil
}

// ClearPending drops stored extracted text.
func (s *Store) ClearPending(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, pendingKey(chatID)).Err()
}
