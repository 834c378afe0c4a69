package monitor

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint hashes the canonical form of an entity map. Identical maps
// yield identical fingerprints regardless of insertion order.
func Fingerprint(entities map[string]Entity) string {
	sum := sha256.Sum256([]byte(canonical(entities)))
	return hex.EncodeToString(sum[:])
}

// canonical serializes entities with sorted keys, length-prefixed strings
// and shortest round-trip float formatting.
func canonical(entities map[string]Entity) string {
	var b strings.Builder

	for _, id := range sortedKeys(entities) {
		e := entities[id]
		writeString(&b, id)
		writeString(&b, e.Namespace)
		writeString(&b, e.Table)
		writeString(&b, e.Host)

		names := sortedKeys(e.Metrics)
		b.WriteString(strconv.Itoa(len(names)))
		b.WriteByte('{')
		for _, name := range names {
			writeString(&b, name)
			b.WriteString(strconv.FormatFloat(e.Metrics[name], 'g', -1, 64))
			b.WriteByte(';')
		}
		b.WriteByte('}')
	}

	return b.String()
}

func writeString(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
