package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. Users are created on registration and never
// deleted by this system.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"-"`
}
