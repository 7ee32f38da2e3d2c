// Package access holds the owner-or-admin authorization rule shared by every
// resource. The rule is evaluated against the stored row, never the payload,
// so a request body cannot reassign ownership to slip past the check.
package access

import "staybook/auth"

// Owned is implemented by any resource with a designated ownership field.
type Owned interface {
	OwnedBy() string
}

// CanWrite reports whether the principal may mutate the resource: admins
// always, everyone else only when they match the ownership field.
func CanWrite(p auth.Principal, res Owned) bool {
	if p.IsAdmin {
		return true
	}
	return res.OwnedBy() == p.ID
}

// ReadScope returns the ownership filter for list and retrieve operations.
// Admins see everything (all=true); other principals are restricted to rows
// whose ownership field equals ownerID.
func ReadScope(p auth.Principal) (ownerID string, all bool) {
	if p.IsAdmin {
		return "", true
	}
	return p.ID, false
}

// CanRead reports whether the resource is inside the principal's read scope.
func CanRead(p auth.Principal, res Owned) bool {
	return CanWrite(p, res)
}
