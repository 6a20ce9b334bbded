package protocol

import (
	"fmt"
	"strings"
)

// Variant selects the congestion-control algorithm driving a flow's window.
type Variant uint8

const (
	// Reno halves its window on any loss or ECN signal.
	Reno Variant = 1 + iota
	// DCTCP scales its decrease with the smoothed fraction of marked bytes.
	DCTCP
	// SpaceCC is delay-based and ignores loss and ECN entirely.
	SpaceCC
)

func (v Variant) String() string {
	switch v {
	case Reno:
		return "reno"
	case DCTCP:
		return "dctcp"
	case SpaceCC:
		return "spacecc"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(v))
	}
}

// VariantFromString parses a variant name as it appears in configuration
// files.
func VariantFromString(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "reno":
		return Reno, nil
	case "dctcp":
		return DCTCP, nil
	case "spacecc":
		return SpaceCC, nil
	default:
		return 0, fmt.Errorf("unknown congestion control variant: %q", s)
	}
}
