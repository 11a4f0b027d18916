// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers handed out for reader sessions.

Version 7 values sort by creation time, so listing sessions by id lists them
in the order they were opened.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to a random v4 when the clock
// source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
