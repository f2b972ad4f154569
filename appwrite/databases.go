package appwrite

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Databases exposes the document-store surface of the remote service.
type Databases struct {
	client *Client
}

// CreateDocument creates a document in the given collection with the supplied
// attributes and access rules.
func (d *Databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any, permissions []string) error {
	body := map[string]any{
		"documentId": documentID,
		"data":       data,
	}
	if len(permissions) > 0 {
		body["permissions"] = permissions
	}

	path := documentsPath(databaseID, collectionID)
	return d.client.call(ctx, http.MethodPost, path, nil, body, nil)
}

// ListDocuments lists collection documents matching the given queries.
func (d *Databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []Query) (*DocumentList, error) {
	values := url.Values{}
	for _, q := range queries {
		values.Add("queries[]", q.String())
	}

	list := &DocumentList{}
	path := documentsPath(databaseID, collectionID)
	if err := d.client.call(ctx, http.MethodGet, path, values, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(databaseID), url.PathEscape(collectionID))
}
