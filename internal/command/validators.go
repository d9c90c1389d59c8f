// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator rejects a flag value that is itself a long flag, as in
// "-o --titles", where the parser took the next flag as the value.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// outputFlagValidator checks the value given to --output.
func outputFlagValidator(value string) error {
	return FlagValidators(value, JammedFlagValidator, OutputValidator)
}

// ArgCountValidator returns a Before hook that requires at least n
// positional arguments.
func ArgCountValidator(n int, usage string) cli.BeforeFunc {
	return func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if c.Bool("tldr") {
			return ctx, nil
		}
		if c.NArg() < n {
			return ctx, fmt.Errorf("%s: expected at least %d argument(s), got %d", usage, n, c.NArg())
		}
		return ctx, nil
	}
}
