// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/utilsgo/internal/config"
	"github.com/staranto/utilsgo/internal/fetch"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Fetcher options applied to every remote document. Tests use this to
	// substitute the transport.
	FetchOptions []fetch.Option
}
