package palette

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseScriptCall(t *testing.T) {
	env := map[string]string{"ROFI_RETV": "1", "ROFI_INFO": "workspace:web"}
	call, err := ParseScriptCall([]string{"Switch to the workspace \"web\""}, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("ParseScriptCall: %v", err)
	}
	if call.Retv != RetvSelected || call.Info != "workspace:web" || call.Arg == "" {
		t.Fatalf("call = %+v", call)
	}

	call, err = ParseScriptCall(nil, func(string) string { return "" })
	if err != nil || call.Retv != RetvInitial {
		t.Fatalf("bare call = %+v, %v", call, err)
	}

	if _, err := ParseScriptCall(nil, func(string) string { return "x" }); err == nil {
		t.Fatal("expected error for non-numeric ROFI_RETV")
	}
}

func TestScriptWriter_Output(t *testing.T) {
	var buf bytes.Buffer
	sw := NewScriptWriter(&buf)
	sw.Header("hypract", "a & b")
	sw.Row(Item{Label: "Activities", IsHeader: true})
	sw.Row(Item{Label: "work <now>", Icon: "theater-symbolic", Info: "activity:work"})
	if err := sw.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		"\x00prompt\x1fhypract",
		"\x00markup-rows\x1ftrue",
		"\x00no-custom\x1ffalse",
		"\x00message\x1fa &amp; b",
		"<b>Activities</b>\x00nonselectable\x1ftrue",
		"work &lt;now&gt;\x00icon\x1ftheater-symbolic\x1finfo\x1factivity:work",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("closed pipe")
}

func TestScriptWriter_StickyError(t *testing.T) {
	fw := &failingWriter{}
	sw := NewScriptWriter(fw)
	sw.Option("prompt", "x")
	sw.Row(Item{Label: "y"})
	if sw.Err() == nil {
		t.Fatal("expected write error")
	}
	if fw.n != 1 {
		t.Fatalf("writes after failure = %d, want 1", fw.n)
	}
}
