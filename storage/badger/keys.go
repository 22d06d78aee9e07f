package badger

import (
	"encoding/binary"

	"github.com/poiesic/helpmatch/core"
)

// Key prefixes for different data types
const (
	volunteerRecordPrefix = "volrec:"
	volunteerOrderPrefix  = "volord:"
	volunteerOrderSeq     = "volordseq"
	requestRecordPrefix   = "reqrec:"
	requestOrderPrefix    = "reqord:"
	requestOrderSeq       = "reqordseq"
	embeddingPrefix       = "embvec:"
)

// makeVolunteerKey generates a key for a volunteer by ID.
func makeVolunteerKey(id string) []byte {
	return []byte(volunteerRecordPrefix + id)
}

// makeRequestKey generates a key for a help request by ID.
func makeRequestKey(id string) []byte {
	return []byte(requestRecordPrefix + id)
}

// makeOrderKey generates a key for an insertion-order index entry.
// Format: prefix + big-endian sequence, so lexicographic order is insertion order.
func makeOrderKey(prefix string, seq uint64) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeEmbeddingKey generates a key for a cached embedding.
func makeEmbeddingKey(key core.Fingerprint) []byte {
	buf := make([]byte, len(embeddingPrefix)+8)
	offset := copy(buf, embeddingPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(key))
	return buf
}
