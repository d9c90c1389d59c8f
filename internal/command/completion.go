// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/meta"
)

const bashCompletionScript = `# bash completion for utils
_utils()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get fetch drill completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --titles -t --tldr"

    case "$cmd" in
        get|fetch)
            local opts="$common --cache"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _utils utils
`

const zshCompletionScript = `#compdef utils

_utils() {
  local -a cmds
  cmds=(
    'get:print values from a nested JSON or YAML document'
    'fetch:GET a URL and print its JSON body'
    'drill:query raw JSON with paths'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'utils commands' cmds
    return
  fi

  case $words[2] in
    get|fetch)
      _arguments -C $common '--cache[use the disk cache]' '*:source:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:source:_files'
      ;;
  esac
}

compdef _utils utils
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(writer(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(writer(cmd), zshCompletionScript)
	default:
		return errors.New("usage: utils completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "utils completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
