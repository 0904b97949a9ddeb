// Package authz holds the client-side ownership gate. It is a UX
// convenience layer only: the database's own policies remain the real
// security boundary, and a passing check here is never treated as proof
// of authorization.
package authz

// IsOwner reports whether currentUserID identifies the owner of a
// resource owned by ownerID. An empty currentUserID (no authenticated
// user) is never an owner. Pure and total: no side effects, no panics.
func IsOwner(currentUserID, ownerID string) bool {
	if currentUserID == "" {
		return false
	}
	return currentUserID == ownerID
}
