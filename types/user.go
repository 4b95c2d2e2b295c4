package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a document in the users collection.
// The collection is schemaless: every field besides the identifier is
// optional, and an absent field reads back as null.
type User struct {
	// ID is the store-assigned identifier. It is never client-supplied.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Name is the user's display name.
	Name *string `json:"name" bson:"name,omitempty"`

	// Email is the user's email address. Uniqueness is enforced by a
	// unique sparse index, not by application logic.
	Email *string `json:"email" bson:"email,omitempty"`

	// Password holds either a bcrypt hash or, when the caller opted out
	// of hashing, the plain value as it was submitted.
	Password *string `json:"password,omitempty" bson:"password,omitempty"`
}

// UserUpdate carries a partial update. Only non-nil fields are applied.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}
