// Package dictionary holds the session-scoped bidirectional mapping between
// original JSON object keys and the short numeric tokens TOON substitutes
// for them. Tokens are minted on first use, monotonically increasing, and
// never rebound within a session.
package dictionary

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/skaldra/toon/internal/errors"
)

// UnknownKeyPrefix prefixes placeholder keys returned for tokens that have
// no dictionary entry. Decoding never fails on an unknown token; it
// degrades to a placeholder so the rest of the document still decodes.
const UnknownKeyPrefix = "UNKNOWN_"

// Entry is one key/token pair in first-seen order.
type Entry struct {
	Key   string
	Token string
}

// Snapshot is a read-only copy of the dictionary state at call time.
// Mutating a snapshot does not affect the dictionary.
type Snapshot struct {
	SessionID  string
	KeyToToken map[string]string
	TokenToKey map[string]string
	Entries    []Entry // first-seen order
}

// Dictionary is the token dictionary. One instance lives per converter;
// independent converters get independent token spaces. Minting is a
// read-check-then-write sequence, so all access goes through one mutex.
type Dictionary struct {
	mu         sync.Mutex
	keyToToken map[string]string
	tokenToKey map[string]string
	order      []string // keys in first-seen order
	nextID     int

	sessionID string
	log       *slog.Logger
}

// New creates an empty dictionary whose counter starts at 1.
func New(log *slog.Logger) *Dictionary {
	if log == nil {
		log = slog.Default()
	}
	return &Dictionary{
		keyToToken: make(map[string]string),
		tokenToKey: make(map[string]string),
		nextID:     1,
		sessionID:  uuid.NewString(),
		log:        log,
	}
}

// NewSeeded creates a dictionary preloaded with key→token pairs. The
// counter resumes at max(numeric token values)+1. Seeds with duplicate
// tokens or non-numeric tokens are rejected.
func NewSeeded(seed map[string]string, log *slog.Logger) (*Dictionary, error) {
	d := New(log)
	maxID := 0
	for key, token := range seed {
		id, err := strconv.Atoi(token)
		if err != nil || id < 1 {
			return nil, errors.NewInputError(
				fmt.Sprintf("seed token %q for key %q is not a positive integer", token, key),
				errors.ErrInvalidSeed,
			)
		}
		if prev, exists := d.tokenToKey[token]; exists {
			return nil, errors.NewInputError(
				fmt.Sprintf("seed token %q bound to both %q and %q", token, prev, key),
				errors.ErrInvalidSeed,
			)
		}
		d.keyToToken[key] = token
		d.tokenToKey[token] = key
		d.order = append(d.order, key)
		if id > maxID {
			maxID = id
		}
	}
	d.nextID = maxID + 1
	return d, nil
}

// SessionID identifies this dictionary instance.
func (d *Dictionary) SessionID() string {
	return d.sessionID
}

// TokenFor returns the token for key, minting a new one on first use.
// Idempotent: a key keeps its token for the life of the dictionary.
func (d *Dictionary) TokenFor(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token, ok := d.keyToToken[key]; ok {
		return token
	}

	token := formatToken(d.nextID)
	d.nextID++
	d.keyToToken[key] = token
	d.tokenToKey[token] = key
	d.order = append(d.order, key)

	d.log.Debug("minted token",
		"session", d.sessionID,
		"key", key,
		"token", token,
	)
	return token
}

// KeyFor resolves a token back to its original key. Unregistered tokens
// resolve to UNKNOWN_<token> rather than failing; decoding never mints.
func (d *Dictionary) KeyFor(token string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if key, ok := d.tokenToKey[token]; ok {
		return key
	}
	return UnknownKeyPrefix + token
}

// Len reports the number of registered keys.
func (d *Dictionary) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keyToToken)
}

// Snapshot returns a copy of the current state for display or export.
func (d *Dictionary) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		SessionID:  d.sessionID,
		KeyToToken: make(map[string]string, len(d.keyToToken)),
		TokenToKey: make(map[string]string, len(d.tokenToKey)),
		Entries:    make([]Entry, 0, len(d.order)),
	}
	for k, t := range d.keyToToken {
		snap.KeyToToken[k] = t
	}
	for t, k := range d.tokenToKey {
		snap.TokenToKey[t] = k
	}
	for _, key := range d.order {
		snap.Entries = append(snap.Entries, Entry{Key: key, Token: d.keyToToken[key]})
	}
	return snap
}

// formatToken renders a counter value as a token: zero-padded to at least
// two digits, growing naturally past 99 without re-padding earlier tokens.
func formatToken(id int) string {
	return fmt.Sprintf("%02d", id)
}
