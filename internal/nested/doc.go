// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package nested walks paths of keys through nested maps, as produced by
// decoding JSON or YAML documents, and drills into raw JSON documents.
package nested
