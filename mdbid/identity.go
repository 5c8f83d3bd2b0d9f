// Package mdbid provides an ObjectID identity mixin for Mongo documents.
package mdbid

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identifier provides an interface to items that use the primitive Mongo ObjectID.
type Identifier interface {
	ID() primitive.ObjectID
	Filter() bson.D
}

var _ Identifier = &Identity{}

// Identity instantiates the Identifier interface.
// Embed it with `bson:"inline"` so the ObjectID maps to the _id field.
type Identity struct {
	OID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitzero"`
}

// ID returns the primitive Mongo ObjectID for an item.
func (idm *Identity) ID() primitive.ObjectID {
	return idm.OID
}

// Filter returns a Mongo filter object for the item's ID.
func (idm *Identity) Filter() bson.D {
	return FilterFor(idm.OID)
}

// HasID returns true if an ObjectID has been assigned.
func (idm *Identity) HasID() bool {
	return !idm.OID.IsZero()
}

// EnsureID assigns a new ObjectID if none has been assigned and returns the ID.
// Assigning the ID before insert means the caller's item carries the same ID as the stored document.
func (idm *Identity) EnsureID() primitive.ObjectID {
	if idm.OID.IsZero() {
		idm.OID = primitive.NewObjectID()
	}
	return idm.OID
}

////////////////////////////////////////////////////////////////////////////////

// ErrInvalidID is returned from ParseID for strings that are not ObjectID hex.
var ErrInvalidID = errors.New("invalid object ID")

// ParseID converts a 24 character hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w '%s': %w", ErrInvalidID, hex, err)
	}
	return oid, nil
}

// FilterFor returns a Mongo filter object for the specified ID.
func FilterFor(oid primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}
