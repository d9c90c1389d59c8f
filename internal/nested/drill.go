// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nested

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

// Drill walks path through the raw JSON document doc. Keys are separated by
// dots and array elements are addressed as items[2]. A single-element array
// of objects is stepped through transparently, so users.name resolves against
// the lone element of users. A missing path yields a Result that does not
// Exist.
func Drill(doc string, path string) gjson.Result {
	result := gjson.Parse(doc)
	if path == "" {
		return result
	}

	path = indexRe.ReplaceAllString(path, ".$1")
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}

		if result.IsArray() && !isIndex(seg) {
			elems := result.Array()
			if len(elems) != 1 {
				log.Debugf("drill: %q is not an index into a %d element array", seg, len(elems))
				return gjson.Result{}
			}
			result = elems[0]
		}

		result = result.Get(escapeKey(seg))
		if !result.Exists() {
			return result
		}
	}

	return result
}

// escapeKey quotes gjson path syntax in a literal key.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', '(', ')', '[', ']', '{', '}', ',', '"', '~':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
