package palette

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// Values rofi passes in ROFI_RETV when it runs a script mode.
const (
	RetvInitial  = 0 // first call, list rows
	RetvSelected = 1 // a listed row was chosen
	RetvCustom   = 2 // free text was entered
)

// ScriptCall is one invocation of a rofi script mode.
type ScriptCall struct {
	Retv int
	Arg  string // Chosen row text, or the typed text for RetvCustom
	Info string // ROFI_INFO of the chosen row
}

// ParseScriptCall reads the invocation rofi made from argv (without the
// program name) and the environment.
func ParseScriptCall(args []string, getenv func(string) string) (ScriptCall, error) {
	call := ScriptCall{Info: getenv("ROFI_INFO")}
	if len(args) > 0 {
		call.Arg = args[0]
	}
	retv := strings.TrimSpace(getenv("ROFI_RETV"))
	if retv == "" {
		return call, nil
	}
	n, err := strconv.Atoi(retv)
	if err != nil {
		return ScriptCall{}, fmt.Errorf("invalid ROFI_RETV %q", retv)
	}
	call.Retv = n
	return call, nil
}

var scriptCaps = Capabilities{
	Icons:         true,
	Markup:        true,
	NonSelectable: true,
	MessageBar:    true,
	RowStates:     true,
}

// ScriptWriter emits rofi script-mode output: mode options first, then one
// row per line. The first write error sticks and is reported by Err.
type ScriptWriter struct {
	w   io.Writer
	err error
}

// NewScriptWriter returns a writer that emits to w.
func NewScriptWriter(w io.Writer) *ScriptWriter {
	return &ScriptWriter{w: w}
}

// Option sets a mode option such as prompt or message.
func (s *ScriptWriter) Option(key, value string) {
	s.printf("\x00%s\x1f%s\n", key, cleanField(value))
}

// Header writes the options every hypract listing uses.
func (s *ScriptWriter) Header(prompt, message string) {
	s.Option("prompt", prompt)
	s.Option("markup-rows", "true")
	s.Option("no-custom", "false")
	if message != "" {
		s.Option("message", html.EscapeString(message))
	}
}

// Row writes one selectable (or header) row.
func (s *ScriptWriter) Row(item Item) {
	display := html.EscapeString(cleanLabel(item.Label))
	if item.IsHeader {
		display = "<b>" + display + "</b>"
	}
	s.printf("%s%s\n", display, rowOptions(item, scriptCaps))
}

// Err returns the first error hit while writing.
func (s *ScriptWriter) Err() error {
	return s.err
}

func (s *ScriptWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
