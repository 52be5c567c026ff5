package badger

import (
	"encoding/binary"

	"github.com/poiesic/venturematch/core"
)

// Key prefixes for different data types
const (
	snapshotMetaKey     = "snapmeta"
	snapshotLabelsKey   = "snaplabels"
	investorPrefix      = "inv:"
	investorIndexPrefix = "invid:"
	startupPrefix       = "stu:"
	startupIndexPrefix  = "stuid:"
	interactionPrefix   = "ixn:"
)

// snapshotPrefixes lists every key space owned by the stored snapshot.
var snapshotPrefixes = [][]byte{
	[]byte(snapshotLabelsKey),
	[]byte(investorPrefix),
	[]byte(investorIndexPrefix),
	[]byte(startupPrefix),
	[]byte(startupIndexPrefix),
	[]byte(interactionPrefix),
}

// makePositionKey generates a key for the pos-th record under prefix.
// Format: prefix:position
func makePositionKey(prefix string, pos int) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so iteration follows load order
	binary.BigEndian.PutUint64(buf[offset:], uint64(pos))
	return buf
}

// makeInvestorIndexKey generates the lookup key for an investor ID.
// Format: prefix:id
func makeInvestorIndexKey(id core.ID) []byte {
	buf := make([]byte, len(investorIndexPrefix)+8)
	offset := copy(buf, investorIndexPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeStartupIndexKey generates the lookup key for a startup ID.
func makeStartupIndexKey(id core.StartupID) []byte {
	return []byte(startupIndexPrefix + string(id))
}

// encodePosition and decodePosition store the record position an index key
// points at.
func encodePosition(pos int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(pos))
	return buf
}

func decodePosition(val []byte) (int, bool) {
	if len(val) != 8 {
		return 0, false
	}
	return int(binary.BigEndian.Uint64(val)), true
}
