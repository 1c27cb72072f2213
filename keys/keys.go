// Package keys resolves a round's key material: the public keybox parts of
// the committee and this node's secret share. A JSON registry describes the
// committee; secret material lives in a separate file store so it never
// travels with the public document.
package keys

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/spacemeshos/randomness-beacon/beacon"
	"github.com/spacemeshos/randomness-beacon/common/types"
)

// Store holds secret key material in files named by the hex of the storage
// key. It is deliberately dumb: encryption at rest, if wanted, wraps it.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a Store rooted at dir on the given filesystem.
func NewStore(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key store directory: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

func (s *Store) path(key []byte) string {
	return filepath.Join(s.dir, hex.EncodeToString(key))
}

// Put writes secret material under key, overwriting any previous value.
func (s *Store) Put(key, secret []byte) error {
	if err := afero.WriteFile(s.fs, s.path(key), secret, 0o600); err != nil {
		return fmt.Errorf("write secret %x: %w", key, err)
	}
	return nil
}

// Get reads the secret material stored under key.
func (s *Store) Get(key []byte) ([]byte, error) {
	secret, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return nil, fmt.Errorf("read secret %x: %w", key, err)
	}
	return secret, nil
}

// committee is the JSON document describing a devnet committee. Keys are hex
// encoded. The same committee serves every round; per-round committees need a
// chain-backed lookup instead of this registry.
type committee struct {
	Index            *uint16  `json:"index,omitempty"`
	StorageKey       string   `json:"storageKey,omitempty"`
	VerificationKeys []string `json:"verificationKeys"`
	MasterKey        string   `json:"masterKey"`
	Threshold        uint16   `json:"threshold"`
	Participants     uint16   `json:"participants"`
}

// Registry serves keybox parts from a committee file and secrets from a
// Store. It implements the coordinator's key lookup.
type Registry struct {
	parts *beacon.KeyboxParts
	store *Store
}

// NewRegistry loads the committee document at path and binds it to store.
func NewRegistry(fsys afero.Fs, path string, store *Store) (*Registry, error) {
	buf, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read committee file: %w", err)
	}
	var doc committee
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parse committee file: %w", err)
	}
	parts, err := doc.keyboxParts()
	if err != nil {
		return nil, fmt.Errorf("invalid committee file %s: %w", path, err)
	}
	return &Registry{parts: parts, store: store}, nil
}

func (d *committee) keyboxParts() (*beacon.KeyboxParts, error) {
	if d.Threshold == 0 || d.Participants < d.Threshold {
		return nil, fmt.Errorf("invalid committee size %d for threshold %d", d.Participants, d.Threshold)
	}
	if len(d.VerificationKeys) == 0 {
		return nil, fmt.Errorf("no verification keys")
	}
	parts := &beacon.KeyboxParts{
		Index:        d.Index,
		Threshold:    d.Threshold,
		Participants: d.Participants,
	}
	if d.Index != nil {
		if d.StorageKey == "" {
			return nil, fmt.Errorf("participant %d without storage key", *d.Index)
		}
		key, err := hex.DecodeString(d.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("decode storage key: %w", err)
		}
		parts.StorageKey = key
	}
	for i, vk := range d.VerificationKeys {
		buf, err := hex.DecodeString(vk)
		if err != nil {
			return nil, fmt.Errorf("decode verification key %d: %w", i, err)
		}
		parts.VerificationKeys = append(parts.VerificationKeys, buf)
	}
	master, err := hex.DecodeString(d.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	parts.MasterKey = master
	return parts, nil
}

// PublicKeyboxParts returns the committee's keybox parts. The registry's
// static committee covers every nonce; ErrNoKeybox is reserved for lookups
// backed by per-round chain state.
func (r *Registry) PublicKeyboxParts(types.Nonce) (*beacon.KeyboxParts, error) {
	return r.parts, nil
}

// FetchSecret reads this node's secret key material from the store.
func (r *Registry) FetchSecret(_ context.Context, storageKey []byte) ([]byte, error) {
	return r.store.Get(storageKey)
}

// WriteCommittee serializes a committee document for one node and writes it
// to path. Used by the dealer flow to provision devnets.
func WriteCommittee(fsys afero.Fs, path string, parts *beacon.KeyboxParts) error {
	doc := committee{
		Index:        parts.Index,
		Threshold:    parts.Threshold,
		Participants: parts.Participants,
		MasterKey:    hex.EncodeToString(parts.MasterKey),
	}
	if parts.Index != nil {
		doc.StorageKey = hex.EncodeToString(parts.StorageKey)
	}
	for _, vk := range parts.VerificationKeys {
		doc.VerificationKeys = append(doc.VerificationKeys, hex.EncodeToString(vk))
	}
	buf, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal committee: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create committee directory: %w", err)
		}
	}
	if err := afero.WriteFile(fsys, path, buf, 0o600); err != nil {
		return fmt.Errorf("write committee file: %w", err)
	}
	return nil
}
