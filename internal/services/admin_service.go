package services

import (
	"context"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminFindLimit caps console reads.
const AdminFindLimit = 500

// AdminService is the collection console for administrators. Filters and
// documents are MongoDB Extended JSON.
type AdminService interface {
	Find(ctx context.Context, viewer *auth.Identity, collection, filter, fields string) ([]bson.M, error)
	Insert(ctx context.Context, viewer *auth.Identity, collection string, doc []byte) ([]any, error)
	Delete(ctx context.Context, viewer *auth.Identity, collection string, filter []byte) (int64, error)
	Set(ctx context.Context, viewer *auth.Identity, collection string, filter, update []byte) (int64, error)
}

type adminService struct {
	collections repositories.CollectionRepository
	admins      map[string]bool
	allowed     map[string]bool
}

func NewAdminService(collections repositories.CollectionRepository, adminUsernames, allowedCollections []string) AdminService {
	return &adminService{
		collections: collections,
		admins:      toSet(adminUsernames, strings.ToLower),
		allowed:     toSet(allowedCollections, strings.TrimSpace),
	}
}

func (s *adminService) Find(ctx context.Context, viewer *auth.Identity, collection, filter, fields string) ([]bson.M, error) {
	if err := s.authorize(viewer, collection); err != nil {
		return nil, err
	}
	query, err := parseDocument([]byte(filter))
	if err != nil {
		return nil, err
	}

	var projection []string
	for _, f := range strings.Split(fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			projection = append(projection, f)
		}
	}

	docs, err := s.collections.Find(ctx, collection, query, projection, AdminFindLimit)
	if err != nil {
		return nil, storeError("find documents", err)
	}
	return docs, nil
}

// Insert accepts a single document or an array of documents.
func (s *adminService) Insert(ctx context.Context, viewer *auth.Identity, collection string, doc []byte) ([]any, error) {
	if err := s.authorize(viewer, collection); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(doc))) == 0 {
		return nil, invalid("doc is required")
	}

	wrapped, err := parseDocument([]byte(`{"doc":` + string(doc) + `}`))
	if err != nil {
		return nil, err
	}

	var docs []any
	switch v := wrapped["doc"].(type) {
	case primitive.M, primitive.D:
		docs = []any{v}
	case primitive.A:
		for _, item := range v {
			switch item.(type) {
			case primitive.M, primitive.D:
				docs = append(docs, item)
			default:
				return nil, invalid("doc array must contain objects")
			}
		}
	default:
		return nil, invalid("doc must be an object or an array of objects")
	}
	if len(docs) == 0 {
		return nil, invalid("doc is empty")
	}

	ids, err := s.collections.Insert(ctx, collection, docs)
	if err != nil {
		return nil, storeError("insert documents", err)
	}
	return ids, nil
}

// Delete refuses an empty filter.
func (s *adminService) Delete(ctx context.Context, viewer *auth.Identity, collection string, filter []byte) (int64, error) {
	if err := s.authorize(viewer, collection); err != nil {
		return 0, err
	}
	query, err := parseDocument(filter)
	if err != nil {
		return 0, err
	}
	if len(query) == 0 {
		return 0, invalid("A non-empty filter is required")
	}

	n, err := s.collections.DeleteMany(ctx, collection, query)
	if err != nil {
		return 0, storeError("delete documents", err)
	}
	return n, nil
}

// Set applies update as a field $set. It refuses an empty filter and
// operator keys.
func (s *adminService) Set(ctx context.Context, viewer *auth.Identity, collection string, filter, update []byte) (int64, error) {
	if err := s.authorize(viewer, collection); err != nil {
		return 0, err
	}
	query, err := parseDocument(filter)
	if err != nil {
		return 0, err
	}
	if len(query) == 0 {
		return 0, invalid("A non-empty filter is required")
	}
	fields, err := parseDocument(update)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, invalid("update is required")
	}
	for key := range fields {
		if strings.HasPrefix(key, "$") || key == "_id" {
			return 0, invalid("Field not allowed in update: " + key)
		}
	}

	n, err := s.collections.SetMany(ctx, collection, query, fields)
	if err != nil {
		return 0, storeError("update documents", err)
	}
	return n, nil
}

func (s *adminService) authorize(viewer *auth.Identity, collection string) error {
	if viewer == nil {
		return errNotSignedIn
	}
	if !s.admins[strings.ToLower(viewer.Username)] {
		return unauthorized("Admin access required")
	}
	if !s.allowed[collection] {
		return notFound("Unknown collection: " + collection)
	}
	return nil
}

// parseDocument decodes relaxed Extended JSON. Empty input is an empty document.
func parseDocument(raw []byte) (bson.M, error) {
	doc := bson.M{}
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return doc, nil
	}
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, &Failure{Kind: ErrInvalid, Message: "Malformed JSON document", Err: err}
	}
	return doc, nil
}

func toSet(values []string, norm func(string) string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = norm(strings.TrimSpace(v)); v != "" {
			set[v] = true
		}
	}
	return set
}
