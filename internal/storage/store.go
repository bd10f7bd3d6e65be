package storage

// Storage keys. One named record per key, mirroring the browser-profile
// layout the canvas clients originally used.
const (
	KeyCards  = "kj_cards"
	KeyGroups = "kj_groups"
	KeyUserId = "kj_user_id"
)

// Store is the key-value adapter the repositories run on. A missing key is
// not an error; implementations return found=false and callers degrade to an
// empty collection. No schema versioning: payloads are opaque JSON documents.
type Store interface {
	Read(key string) (data []byte, found bool)
	Write(key string, data []byte) error
	Delete(key string) error
}
