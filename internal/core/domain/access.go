package domain

// Identity is the caller extracted from a verified bearer token.
type Identity struct {
	ID    string
	Email string
}

// CanAccess is the single ownership predicate for owner-scoped resources.
// A resource with no recorded owner is never accessible.
func CanAccess(caller Identity, ownerID string) bool {
	return caller.ID != "" && ownerID != "" && caller.ID == ownerID
}
