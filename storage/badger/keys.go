package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/appscout/appscout/core"
)

// Key prefixes for different data types
const (
	itemPrefix         = "item"
	itemKeywordPrefix  = "itemkw"
	itemCategoryPrefix = "itemcat"
	profilePrefix      = "prof"
	armPrefix          = "arm"
	eventPrefix        = "evt"
)

// makeItemKey generates a key for an item by ID.
func makeItemKey(id core.ID) []byte {
	return makeIDKey(itemPrefix, id)
}

// makeProfileKey generates a key for a profile by ID.
func makeProfileKey(id core.ID) []byte {
	return makeIDKey(profilePrefix, id)
}

// makeArmKey generates a key for a bandit arm by item ID.
func makeArmKey(id core.ID) []byte {
	return makeIDKey(armPrefix, id)
}

// makeIDKey generates a key of the form prefix:id with the ID in BigEndian
// so iteration order matches ascending id order.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+1+8)
	offset := copy(buf, prefix)
	buf[offset] = ':'
	binary.BigEndian.PutUint64(buf[offset+1:], uint64(id))
	return buf
}

// makeItemKeywordKey generates a composite key for the keyword index.
// Format: prefix:term:id
func makeItemKeywordKey(term string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", itemKeywordPrefix, term)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialItemKeywordKey generates the iteration prefix for one term.
func makePartialItemKeywordKey(term string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", itemKeywordPrefix, term))
}

// makeItemCategoryKey generates a composite key for the category index.
// Format: prefix:category:id
func makeItemCategoryKey(category string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", itemCategoryPrefix, category)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialItemCategoryKey generates the iteration prefix for one category.
func makePartialItemCategoryKey(category string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", itemCategoryPrefix, category))
}

// makeEventKey generates a composite key for the interaction log.
// Format: prefix:timestamp:eventId, BigEndian timestamp so lexicographic
// iteration yields chronological order.
func makeEventKey(timestamp time.Time, eventId string) []byte {
	prefix := eventPrefix + ":"
	buf := make([]byte, len(prefix)+8+len(eventId))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	copy(buf[offset+8:], eventId)
	return buf
}

// makePartialEventKey generates a partial key for time range queries.
func makePartialEventKey(timestamp time.Time) []byte {
	prefix := eventPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
