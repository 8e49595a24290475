// Package detector selects the output mode from the environment and the --output flag.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents how output is colored.
type OutputMode int

const (
	// ModeAuto chooses between color and plain from the environment.
	ModeAuto OutputMode = iota
	// ModeColor forces colored output.
	ModeColor
	// ModePlain disables color.
	ModePlain
)

// String returns the flag value for the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeColor:
		return "color"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// ParseOutputMode parses an --output flag value. An empty value means auto.
func ParseOutputMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "color":
		return ModeColor, nil
	case "plain":
		return ModePlain, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "output", flag)
	}
}

// DetectEnvironment returns ModeColor when stdout is a terminal outside CI, ModePlain otherwise.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies the user's choice on top of the detected mode.
func ResolveMode(detected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return detected
	}
	return requested
}

// Profile returns the color profile selector for a resolved mode.
func Profile(mode OutputMode) func() termenv.Profile {
	switch mode {
	case ModeColor:
		return output.ColorProfile
	case ModePlain:
		return output.ColorProfileNone
	default:
		return output.ColorProfileANSI
	}
}
