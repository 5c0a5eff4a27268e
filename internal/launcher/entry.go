package launcher

import (
	"fmt"
	"strings"

	"github.com/1broseidon/hypract/internal/ranker"
)

// Title is the primary line a picker shows for e.
func Title(e ranker.Entry) string {
	return fmt.Sprintf("Switch to the %s %q", e.Kind, e.Text)
}

// Description is the secondary line a picker shows for e.
func Description(e ranker.Entry) string {
	return fmt.Sprintf("Switch to the %s named %s", e.Kind, e.Text)
}

// Icon returns a freedesktop icon name for e.
func Icon(e ranker.Entry) string {
	if e.Kind == ranker.KindActivity {
		return "theater-symbolic"
	}
	return "overlapping-windows-symbolic"
}

// EncodeInfo packs e into the opaque "kind:text" token pickers hand back on
// selection.
func EncodeInfo(e ranker.Entry) string {
	return e.Kind.String() + ":" + e.Text
}

// DecodeInfo reverses EncodeInfo. Score is not carried.
func DecodeInfo(info string) (ranker.Entry, error) {
	kindText, text, ok := strings.Cut(info, ":")
	if !ok {
		return ranker.Entry{}, fmt.Errorf("malformed entry token %q", info)
	}
	kind, ok := ranker.ParseKind(kindText)
	if !ok {
		return ranker.Entry{}, fmt.Errorf("unknown entry kind %q", kindText)
	}
	if strings.TrimSpace(text) == "" {
		return ranker.Entry{}, fmt.Errorf("empty %s name in token %q", kind, info)
	}
	return ranker.Entry{Kind: kind, Text: text}, nil
}
