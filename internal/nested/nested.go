// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package nested

import (
	"errors"
	"fmt"
	"strings"
)

// Map is a level of a nested mapping. Values are either terminal or another
// Map.
type Map = map[string]any

// Path is an ordered list of keys leading from the root of a Map to a value.
type Path []string

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ErrKeyNotFound is matched by every *KeyError.
var ErrKeyNotFound = errors.New("key not found")

// KeyError reports the key at which a traversal stopped, either because the
// key was absent or because the value reached so far was not a Map.
type KeyError struct {
	Key   string
	Path  Path
	Depth int
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// Is lets errors.Is(err, ErrKeyNotFound) succeed.
func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// Access returns the value reached by indexing m with each key of path in
// turn. An empty path returns m itself. m is never modified.
func Access(m Map, path Path) (any, error) {
	var current any = m

	for i, key := range path {
		level, ok := current.(Map)
		if !ok {
			return nil, &KeyError{Key: key, Path: path, Depth: i}
		}
		current, ok = level[key]
		if !ok {
			return nil, &KeyError{Key: key, Path: path, Depth: i}
		}
	}

	return current, nil
}

// Lookup is Access with a dotted key path such as "backend.s3.region".
func Lookup(m Map, dotted string) (any, error) {
	return Access(m, ParsePath(dotted))
}

// ParsePath splits a dotted key path. The empty string is the empty path.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return Path{}
	}
	return Path(strings.Split(dotted, "."))
}
