package view

import (
	"math"
	"strconv"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Helpers reading linked Tcl variables back into Go values.

func scaleInt(s *TScaleWidget) int {
	if s == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Variable()), 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

func scaleFloat(s *TScaleWidget) float64 {
	if s == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Variable()), 64)
	if err != nil {
		return 0
	}
	return f
}

func checked(c *TCheckbuttonWidget) bool {
	if c == nil {
		return false
	}
	b, _ := parseBoolLoose(c.Variable())
	return b
}

func tclBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func entryText(e *TEntryWidget) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Textvariable())
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f", "":
		return false, true
	default:
		return false, false
	}
}
