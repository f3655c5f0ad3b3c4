package pap

import (
	"fmt"
	"strings"

	"github.com/dossier-cli/dossier/internal/apperr"
)

// Level is the PAP exposure of a service or the user's configured ceiling.
// Higher values mean more observable activity.
type Level int

const (
	// RED: nothing leaves the machine. Most restrictive as a limit.
	RED Level = iota
	// AMBER: queries go to a third-party API, not to the subject.
	AMBER
	// GREEN: queries travel the local resolver path and may reach the
	// subject's own infrastructure.
	GREEN
	// WHITE: unrestricted. Most permissive as a limit.
	WHITE
)

// Names lists every level name in ascending order.
var Names = []string{"red", "amber", "green", "white"}

// Parse converts a case-insensitive level name to a Level.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return RED, nil
	case "amber":
		return AMBER, nil
	case "green":
		return GREEN, nil
	case "white":
		return WHITE, nil
	default:
		return WHITE, fmt.Errorf("unknown PAP level %q: must be one of red, amber, green, white", s)
	}
}

// MustParse is like Parse but panics on an unknown name.
// Only call it on values that were already validated.
func MustParse(s string) Level {
	level, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("pap.MustParse: %v", err))
	}
	return level
}

// String returns the lowercase level name.
func (l Level) String() string {
	if l >= RED && l <= WHITE {
		return Names[l]
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Allows reports whether limit permits a service running at level.
//
//	Allows(WHITE, GREEN) == true
//	Allows(AMBER, GREEN) == false
//	Allows(RED, RED)     == true
func Allows(limit, level Level) bool {
	return level <= limit
}

// Check returns an error wrapping apperr.ErrPAPBlocked when limit does not
// permit the named service at level.
func Check(limit, level Level, name string) error {
	if Allows(limit, level) {
		return nil
	}
	return fmt.Errorf("%w: %s requires PAP %s, limit is %s", apperr.ErrPAPBlocked, name, level, limit)
}
