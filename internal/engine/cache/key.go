package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// KeyParams identifies one cacheable request.
type KeyParams struct {
	Operation string `json:"operation"`
	Query     string `json:"query,omitempty"`
	Name      string `json:"name,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// GenerateKey returns "<operation>-<sha256>" for p. Operation, query and name
// are trimmed and lower-cased first, so "PIKA " and "pika" share a key.
func GenerateKey(p KeyParams) string {
	p.Operation = normalize(p.Operation)
	p.Query = normalize(p.Query)
	p.Name = normalize(p.Name)

	// Marshalling a struct of strings and ints cannot fail.
	raw, _ := json.Marshal(p)
	sum := sha256.Sum256(raw)
	return p.Operation + "-" + hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
