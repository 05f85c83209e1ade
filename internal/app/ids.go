package app

import "github.com/google/uuid"

// NewPlayerID returns a fresh identity for a seat holder.
func NewPlayerID() string { return uuid.NewString() }

func newGameID() string { return uuid.NewString() }
