package appwrite

import "encoding/json"

// Account is the remote identity record. The credential hash is owned by the
// service and never leaves it.
type Account struct {
	ID        string `json:"$id"`
	CreatedAt string `json:"$createdAt,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

// Session is a server-issued proof of authentication. At most one session is
// current per client; its secret is what the client sends on authenticated
// calls.
type Session struct {
	ID       string `json:"$id"`
	UserID   string `json:"userId"`
	Secret   string `json:"secret,omitempty"`
	Provider string `json:"provider,omitempty"`
	Expire   string `json:"expire,omitempty"`
}

// JWT is a short-lived token for calling first-party backends on behalf of
// the current session.
type JWT struct {
	Token string `json:"jwt"`
}

// DocumentList is a page of collection documents. Documents are kept raw so
// callers can decode into their own attribute structs.
type DocumentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}
