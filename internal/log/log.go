// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// UTILS_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("UTILS_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages as "timestamp L message key=value" and
// writes them to Writer, or stderr when Writer is nil.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp.Format("2006-01-02 15:04:05"), level, e.Message)

	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}
