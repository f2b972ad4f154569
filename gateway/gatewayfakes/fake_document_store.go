package gatewayfakes

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/gateway"
)

var _ gateway.DocumentStore = (*FakeDocumentStore)(nil)

// StoredDocument is a document as held by the fake store, with its access
// rules visible for assertions.
type StoredDocument struct {
	ID          string
	Data        map[string]any
	Permissions []string
}

// FakeDocumentStore is an in-memory document store keyed by
// database/collection.
type FakeDocumentStore struct {
	lock        sync.Mutex
	collections map[string][]StoredDocument

	// FailCreate makes the next CreateDocument calls fail, for exercising
	// the non-transactional sign-up window.
	FailCreate bool
}

func NewFakeDocumentStore() *FakeDocumentStore {
	return &FakeDocumentStore{collections: make(map[string][]StoredDocument)}
}

func (f *FakeDocumentStore) CreateDocument(_ context.Context, databaseID, collectionID, documentID string, data map[string]any, permissions []string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.FailCreate {
		return &appwrite.Error{
			Code:    http.StatusServiceUnavailable,
			Type:    "general_service_disabled",
			Message: "The document service is unavailable.",
		}
	}

	key := databaseID + "/" + collectionID
	for _, doc := range f.collections[key] {
		if doc.ID == documentID {
			return &appwrite.Error{
				Code:    http.StatusConflict,
				Type:    "document_already_exists",
				Message: "Document with the requested ID already exists.",
			}
		}
	}

	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}
	f.collections[key] = append(f.collections[key], StoredDocument{
		ID:          documentID,
		Data:        copied,
		Permissions: append([]string(nil), permissions...),
	})
	return nil
}

func (f *FakeDocumentStore) ListDocuments(_ context.Context, databaseID, collectionID string, queries []appwrite.Query) (*appwrite.DocumentList, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	matched := make([]json.RawMessage, 0)
	for _, doc := range f.collections[databaseID+"/"+collectionID] {
		if !matches(doc, queries) {
			continue
		}

		fields := map[string]any{"$id": doc.ID}
		for k, v := range doc.Data {
			fields[k] = v
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		matched = append(matched, raw)
	}

	return &appwrite.DocumentList{Total: len(matched), Documents: matched}, nil
}

// Documents returns every document in the given collection.
func (f *FakeDocumentStore) Documents(databaseID, collectionID string) []StoredDocument {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]StoredDocument(nil), f.collections[databaseID+"/"+collectionID]...)
}

func matches(doc StoredDocument, queries []appwrite.Query) bool {
	for _, q := range queries {
		if q.Method() != "equal" {
			return false
		}
		value, ok := doc.Data[q.Attribute()].(string)
		if !ok {
			return false
		}
		found := false
		for _, candidate := range q.Values() {
			if candidate == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
