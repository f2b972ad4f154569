package gateway

import "github.com/meridianapp/identity/appwrite"

// Profile attribute names in the profiles collection.
const (
	attrUserID   = "userId"
	attrFullName = "fullName"
	attrEmail    = "email"
)

// Profile is the user-owned document holding display attributes, keyed by
// account ID. Exactly one exists per account.
type Profile struct {
	ID       string `json:"$id"`
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Identity pairs an account with its profile document.
type Identity struct {
	Account *appwrite.Account
	Profile *Profile
}

// SessionStatus is one side of the authenticated/unauthenticated duality.
type SessionStatus string

const (
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// SessionState is an explicit answer to "is anyone signed in": the Account
// field is set exactly when Status is StatusAuthenticated.
type SessionState struct {
	Status  SessionStatus
	Account *appwrite.Account
}

// Authenticated reports whether the state carries a signed-in account.
func (s SessionState) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
