// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package nested

import (
	"testing"
)

func TestDrill(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		path        string
		expectedStr string
		isNil       bool
		isArray     bool
	}{
		{
			name:        "simple string key",
			json:        `{"name": "test"}`,
			path:        "name",
			expectedStr: "test",
		},
		{
			name:        "simple number key",
			json:        `{"count": 42}`,
			path:        "count",
			expectedStr: "42",
		},
		{
			name:        "simple boolean key",
			json:        `{"payload": true}`,
			path:        "payload",
			expectedStr: "true",
		},
		{
			name:        "nested key",
			json:        `{"a": {"b": 2}}`,
			path:        "a.b",
			expectedStr: "2",
		},
		{
			name:        "array with explicit index",
			json:        `{"items": ["first", "second", "third"]}`,
			path:        "items[2]",
			expectedStr: "third",
		},
		{
			name:        "nested object with array access",
			json:        `{"user": {"tags": ["admin", "user"]}}`,
			path:        "user.tags[1]",
			expectedStr: "user",
		},
		{
			name:        "single element array of objects drills through property",
			json:        `{"users": [{"id": 1, "name": "alice"}]}`,
			path:        "users.name",
			expectedStr: "alice",
		},
		{
			name:        "array of objects with explicit index",
			json:        `{"users": [{"id": 1, "name": "alice"}, {"id": 2, "name": "bob"}]}`,
			path:        "users[1].name",
			expectedStr: "bob",
		},
		{
			name:        "key with hyphen",
			json:        `{"my-key": "value"}`,
			path:        "my-key",
			expectedStr: "value",
		},
		{
			name:        "deeply nested structure",
			json:        `{"root": {"items": [{"kind": "x", "children": [{"attrs": {"id": "c-123"}}]}]}}`,
			path:        "root.items[0].children[0].attrs.id",
			expectedStr: "c-123",
		},
		{
			name:  "nonexistent key",
			json:  `{"name": "test"}`,
			path:  "missing",
			isNil: true,
		},
		{
			name:  "invalid array index",
			json:  `{"items": ["a", "b"]}`,
			path:  "items[10]",
			isNil: true,
		},
		{
			name:  "key into terminal value",
			json:  `{"a": 1}`,
			path:  "a.b",
			isNil: true,
		},
		{
			name:  "empty object",
			json:  `{}`,
			path:  "a",
			isNil: true,
		},
		{
			name:  "property of multi element array without index",
			json:  `{"data": [{"value": "first"}, {"value": "second"}]}`,
			path:  "data.value",
			isNil: true,
		},
		{
			name:    "multi element array without index returns array",
			json:    `{"data": [{"value": "first"}, {"value": "second"}]}`,
			path:    "data",
			isArray: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Drill(tt.json, tt.path)

			if tt.isNil {
				if result.Exists() && result.Type.String() != "Null" {
					t.Errorf("Expected nil/empty result but got: %v", result.Value())
				}
				return
			}

			if !result.Exists() {
				t.Errorf("Expected result but got nil/empty")
				return
			}

			if tt.isArray {
				if !result.IsArray() {
					t.Errorf("Expected array but got: %v (type: %T)", result.Value(), result.Value())
				}
				return
			}

			if val := result.String(); val != tt.expectedStr {
				t.Errorf("Expected %q but got %q", tt.expectedStr, val)
			}
		})
	}
}

func TestDrill_EmptyPath(t *testing.T) {
	result := Drill(`{"a": 1}`, "")
	if !result.IsObject() {
		t.Errorf("Expected the whole document but got: %v", result.Raw)
	}
}

func BenchmarkDrill(b *testing.B) {
	tests := []struct {
		name string
		json string
		path string
	}{
		{name: "simple", json: `{"name": "test"}`, path: "name"},
		{name: "nested_4_levels", json: `{"root": {"sub": {"deep": {"value": "test"}}}}`, path: "root.sub.deep.value"},
		{name: "array_of_objects", json: `{"users": [{"id": 1, "name": "alice"}, {"id": 2, "name": "bob"}]}`, path: "users[0].name"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Drill(tt.json, tt.path)
			}
		})
	}
}
