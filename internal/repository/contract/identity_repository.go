package contract

// IdentityRepository holds the anonymous user id. Generated once, then
// persisted; an initialization gate only, not access control.
type IdentityRepository interface {
	GetOrCreateUserId() (string, error)
	Clear() error
}
