package platform

import (
	"fmt"
	"os"
	"strings"
)

// Kind names a backend implementation.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindHyprland Kind = "hyprland"
	KindEWMH     Kind = "ewmh"
)

// ParseKind validates a backend name. The empty string means auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindHyprland, KindEWMH:
		return k, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want auto, hyprland or ewmh)", s)
	}
}

// Detect resolves KindAuto against the session environment. Hyprland wins
// when its instance signature is present; otherwise an X display selects
// the EWMH backend.
func Detect(kind Kind) (Kind, error) {
	return detect(kind, os.Getenv)
}

func detect(kind Kind, getenv func(string) string) (Kind, error) {
	if kind != KindAuto && kind != "" {
		return kind, nil
	}
	if getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return KindHyprland, nil
	}
	if getenv("DISPLAY") != "" {
		return KindEWMH, nil
	}
	return "", fmt.Errorf("no supported compositor session found (set HYPRLAND_INSTANCE_SIGNATURE or DISPLAY, or pass --backend)")
}
