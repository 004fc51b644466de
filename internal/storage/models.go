package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when an insert collides on a primary key.
var ErrDuplicateID = errors.New("duplicate id")

// Project is a persisted generation artifact. Content is the serialized
// JSON of the artifact; it is stored opaquely and never validated here.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Agent is a deployed agent record. Agents are append-only: status is set
// once at creation and never transitioned.
type Agent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Task      string    `json:"task"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
