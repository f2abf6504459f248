package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a record id of the form <type>_<unixMillis>_<random>.
func NewID(entityType string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", entityType, time.Now().UnixMilli(), random)
}

// IDType returns the <type> prefix of an id produced by NewID, or "" when the id has another shape.
func IDType(id string) string {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 {
		return ""
	}
	return parts[0]
}

// KeyID derives a stable id of the form <type>_<hex> from a natural key, so the same parts
// always name the same document. Parts are joined with a separator that cannot appear in ids.
func KeyID(entityType string, parts ...string) string {
	name := strings.Join(parts, "\x00")
	key := strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(), "-", "")
	return entityType + "_" + key
}
