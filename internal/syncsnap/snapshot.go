// Package syncsnap builds the document a backup/sync layer consumes: a
// snapshot of transactions, projections, and workspace state, with an
// integrity hash over each section. The transport that would carry the
// snapshot somewhere is deliberately not part of this repository.
package syncsnap

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"budgetbook/internal/core"
)

const (
	SectionTransactions = "transactions"
	SectionProjections  = "projections"
	SectionWorkspace    = "workspace"
)

// Section is one independently hashed part of a snapshot.
type Section struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
	Hash    string          `json:"hash"`
}

// Snapshot owns a copy of the domain state at one point in time.
type Snapshot struct {
	CreatedAt time.Time `json:"created_at"`
	Sections  []Section `json:"sections"`
}

// Build serializes each section to JSON and hashes it with SHA-256.
func Build(txs []core.Transaction, projs []core.ProjectedExpense, state map[string]string) (*Snapshot, error) {
	snap := &Snapshot{CreatedAt: time.Now().UTC()}

	for _, part := range []struct {
		name string
		data any
	}{
		{SectionTransactions, txs},
		{SectionProjections, projs},
		{SectionWorkspace, state},
	} {
		section, err := buildSection(part.name, part.data)
		if err != nil {
			return nil, err
		}
		snap.Sections = append(snap.Sections, section)
	}

	return snap, nil
}

func buildSection(name string, data any) (Section, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Section{}, fmt.Errorf("marshal %s section: %w", name, err)
	}
	return Section{Name: name, Payload: payload, Hash: hashPayload(payload)}, nil
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Section returns the named section, or nil when absent.
func (s *Snapshot) Section(name string) *Section {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i]
		}
	}
	return nil
}

// Verify recomputes every section hash and reports the names of sections
// whose payload no longer matches.
func (s *Snapshot) Verify() []string {
	var tampered []string
	for _, section := range s.Sections {
		if hashPayload(section.Payload) != section.Hash {
			tampered = append(tampered, section.Name)
		}
	}
	return tampered
}

// Encode renders the whole snapshot as indented JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return out, nil
}
