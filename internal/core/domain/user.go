package domain

import "time"

// Role identifies the access level of a user account.
type Role string

const (
	// RoleUser is a regular learner account.
	RoleUser Role = "user"

	// RoleAdmin can manage users, departments, materials,
	// questions and quiz schedules.
	RoleAdmin Role = "admin"
)

// User represents an authenticated platform account.
type User struct {
	// ID is the unique identifier assigned by the server.
	ID string `json:"id"`

	// Email is the login identity.
	Email string `json:"email"`

	// FullName is the display name.
	FullName string `json:"full_name"`

	// Department scopes materials and quiz questions for this user.
	Department string `json:"department"`

	// Role is "user" or "admin".
	Role Role `json:"role"`

	// EnrolledMaterials lists material IDs the user is enrolled in.
	EnrolledMaterials []string `json:"enrolled_materials"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may access the admin console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsEnrolled reports whether the user is enrolled in the given material.
func (u *User) IsEnrolled(materialID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.EnrolledMaterials {
		if id == materialID {
			return true
		}
	}
	return false
}

// Session holds the client-side authentication state: the bearer token
// and the profile fetched with it. The token is the only durable piece;
// the profile is refetched whenever the token changes.
type Session struct {
	// Token is the bearer token returned by the login endpoint.
	Token string

	// User is the profile from /auth/me, nil until fetched.
	User *User

	// ExpiresAt is the token expiry decoded from the JWT claims.
	// Display-only; the server remains authoritative.
	ExpiresAt time.Time
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Department is an admin-managed grouping for users and materials.
type Department struct {
	// Name is the unique department identifier.
	Name string `json:"name"`

	// Description is optional explanatory text.
	Description string `json:"description"`

	// CreatedAt is when the department was created.
	CreatedAt time.Time `json:"created_at"`
}
