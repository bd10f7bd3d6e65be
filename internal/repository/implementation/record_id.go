package implementation

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newRecordId builds a millisecond-timestamp base36 prefix plus a 5-char
// random base36 suffix. Collision odds are negligible for an interactive
// single-session tool, and the prefix keeps ids roughly sortable by creation.
func newRecordId() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	for i := 0; i < 5; i++ {
		sb.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	return sb.String()
}
