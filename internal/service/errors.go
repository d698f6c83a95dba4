package service

import "errors"

// ErrNotFound marks a normal empty outcome: no scrobble history, no list
// entry, or an unreachable scrobble backend (reported as absent data, not
// as a transport failure).
var ErrNotFound = errors.New("not found")

// ErrNoMapping marks a lookup that had neither a registered mapping nor an
// explicit username to fall back to.
var ErrNoMapping = errors.New("no username mapping")
