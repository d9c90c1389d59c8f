// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders decoded documents as text, JSON, raw JSON or YAML.
package output
