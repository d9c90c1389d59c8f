// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v3"

	"github.com/staranto/utilsgo/internal/config"
	"github.com/staranto/utilsgo/internal/nested"
)

// Formats lists the accepted values of --output.
var Formats = []string{"text", "json", "raw", "yaml"}

// Options control how Spit renders a value.
type Options struct {
	Format string
	Titles bool
	Color  bool
}

// Row is one flattened leaf of a document.
type Row struct {
	Key   string
	Value string
}

// Spit writes v to w in the requested format. Unknown formats are treated as
// text.
func Spit(w io.Writer, v any, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "raw":
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return TableWriter(w, v, opts)
	}
}

// TableWriter prints a scalar bare, and anything else as a two column table
// of flattened keys and values.
func TableWriter(w io.Writer, v any, opts Options) error {
	switch v.(type) {
	case nested.Map, []any:
	default:
		_, err := fmt.Fprintln(w, InterfaceToString(v))
		return err
	}

	flat := Flatten(v)
	if len(flat) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 1)
	log.Debugf("padding: %v", pad)

	rows := make([][]string, 0, len(flat))
	for _, r := range flat {
		rows = append(rows, []string{r.Key, r.Value})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		t = t.Headers("KEY", "VALUE").BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// Flatten walks maps and slices and returns one Row per leaf, keyed by its
// dotted path with slice elements addressed as [i]. Rows are sorted by key.
func Flatten(v any) []Row {
	var rows []Row
	flatten("", v, &rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

func flatten(prefix string, v any, rows *[]Row) {
	switch v := v.(type) {
	case nested.Map:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, rows)
		}
	case []any:
		for i, child := range v {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, rows)
		}
	default:
		*rows = append(*rows, Row{Key: prefix, Value: InterfaceToString(v)})
	}
}

// InterfaceToString renders a decoded scalar. nil renders as "null" unless
// an empty value is supplied.
func InterfaceToString(value any, emptyValue ...string) string {
	if value == nil {
		if len(emptyValue) > 0 {
			return emptyValue[0]
		}
		return "null"
	}

	switch value := value.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
