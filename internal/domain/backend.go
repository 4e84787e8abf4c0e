package domain

import (
	"encoding/json"
	"fmt"
)

// Envelope is the backend's uniform response wrapper for API endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *EnvelopeError  `json:"error,omitempty"`
}

type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeEnvelope parses an envelope body; a non-JSON body is an error.
func DecodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("response body is not a valid envelope: %w", err)
	}
	return env, nil
}

// LeaderboardEntry is one row of the ranked user list.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
}

// DecodeEntries parses the data payload of a leaderboard response.
func DecodeEntries(data json.RawMessage) ([]LeaderboardEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard data is not an entry list: %w", err)
	}
	return entries, nil
}

// User is the account shape returned by the login endpoint.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Points   int    `json:"points"`
}

// LoginResponse is the top-level login payload: the user plus an opaque
// access token. Unlike the other endpoints it is not envelope-wrapped.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// DecodeLogin parses a successful login body.
func DecodeLogin(body []byte) (LoginResponse, error) {
	var lr LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return LoginResponse{}, fmt.Errorf("login body is not valid JSON: %w", err)
	}
	return lr, nil
}

// ColumnInfo is one row of a DESCRIBE <table> result.
type ColumnInfo struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Null  string `json:"null"`
	Key   string `json:"key,omitempty"`
}

// RankedUser is one row of the direct leaderboard ordering query.
type RankedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
}

// CacheKey is one leaderboard cache entry observed in Redis.
type CacheKey struct {
	Key string `json:"key"`
	// TTLSeconds is negative when the key has no expiry.
	TTLSeconds int64 `json:"ttl_seconds"`
}
