package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/acl/pkg/acl"
)

type permissionDocument struct {
	Action   string `bson:"action"`
	Resource string `bson:"resource"`
}

type roleDocument struct {
	Name        string               `bson:"_id"`
	Parent      string               `bson:"parent"`
	Permissions []permissionDocument `bson:"permissions"`
}

func (d roleDocument) toRole() acl.Role {
	role := acl.NewRole(d.Name, d.Parent)
	for _, p := range d.Permissions {
		role.Permissions = append(role.Permissions, acl.Permission{Action: p.Action, Resource: p.Resource})
	}
	return role
}

// Store implements acl.Store on a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

// New creates a Store over the given collection.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// NewFromClient creates a Store over the database and collection named in cfg.
func NewFromClient(client *mongo.Client, cfg Config) *Store {
	return New(client.Database(cfg.Database).Collection(cfg.Collection))
}

// AddRole implements acl.Store.
// The role name is the document _id, so a duplicate-key error means the role
// already exists and is left untouched.
func (s *Store) AddRole(ctx context.Context, name, inherits string) (bool, error) {
	_, err := s.coll.InsertOne(ctx, roleDocument{
		Name:        name,
		Parent:      inherits,
		Permissions: []permissionDocument{},
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("mongostore: add role %q: %w", name, err)
	}
	return true, nil
}

// GetRole implements acl.Store.
func (s *Store) GetRole(ctx context.Context, name string) (acl.Role, error) {
	var doc roleDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: name}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return acl.Role{}, s.notFound(ctx, name)
	}
	if err != nil {
		return acl.Role{}, fmt.Errorf("mongostore: get role %q: %w", name, err)
	}
	return doc.toRole(), nil
}

// Exists implements acl.Store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: name}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongostore: exists %q: %w", name, err)
	}
	return n > 0, nil
}

// UpdatePermissions implements acl.Store.
func (s *Store) UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error) {
	update := bson.D{{Key: "$push", Value: bson.D{{
		Key:   "permissions",
		Value: permissionDocument{Action: action, Resource: resource},
	}}}}

	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: name}}, update)
	if err != nil {
		return false, fmt.Errorf("mongostore: update permissions of %q: %w", name, err)
	}
	if res.MatchedCount == 0 {
		return false, s.notFound(ctx, name)
	}
	return true, nil
}

func (s *Store) notFound(ctx context.Context, name string) error {
	n, err := s.coll.CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return errors.Join(acl.NotFoundError(name, false), err)
	}
	return acl.NotFoundError(name, n == 0)
}
