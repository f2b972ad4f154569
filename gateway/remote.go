package gateway

import (
	"context"

	"github.com/meridianapp/identity/appwrite"
)

// AccountService is the account/session contract the gateway consumes.
// *appwrite.Accounts satisfies it; tests use the in-memory fake.
type AccountService interface {
	Create(ctx context.Context, id, email, password, name string) (*appwrite.Account, error)
	CreateEmailSession(ctx context.Context, email, password string) (*appwrite.Session, error)
	DeleteCurrentSession(ctx context.Context) error
	Get(ctx context.Context) (*appwrite.Account, error)
	CreateJWT(ctx context.Context) (*appwrite.JWT, error)
	OAuth2SessionURL(provider appwrite.Provider, success, failure string) string
	OAuth2TokenURL(provider appwrite.Provider, success, failure string) string
	CreateSessionFromToken(ctx context.Context, userID, secret string) (*appwrite.Session, error)
}

// DocumentStore is the document contract the gateway consumes.
type DocumentStore interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any, permissions []string) error
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []appwrite.Query) (*appwrite.DocumentList, error)
}

// Remotes holds the remote service handles the gateway depends on.
type Remotes struct {
	Accounts  AccountService
	Documents DocumentStore
}
