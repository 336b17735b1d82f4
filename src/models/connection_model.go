package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionRequest is a directed proposal from sender to recipient that a
// connection be formed. Status only ever moves pending -> accepted or
// pending -> rejected.
type ConnectionRequest struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Sender    primitive.ObjectID `json:"sender" bson:"sender"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Status    ConnectionStatus   `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// ConnectionRequestDto is a pending request with the sender's profile resolved.
type ConnectionRequestDto struct {
	ID        primitive.ObjectID `json:"_id"`
	Sender    UserDto            `json:"sender"`
	Recipient primitive.ObjectID `json:"recipient"`
	Status    ConnectionStatus   `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Pair-wise relation as seen from one user's side.
const (
	StatusConnected    = "connected"
	StatusPending      = "pending"
	StatusReceived     = "received"
	StatusNotConnected = "not connected"
)
