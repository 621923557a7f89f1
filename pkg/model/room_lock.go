package model

import "time"

// RoomLock is an advisory lock document serializing conflict-check-then-write
// sequences per room. The deterministic _id makes concurrent inserts collide
// on the unique index; ExpiresAt lets a TTL index reap locks whose holders
// died before releasing.
type RoomLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
