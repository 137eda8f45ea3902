package output

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	redColor     = color.New(color.FgRed)
	blueColor    = color.New(color.FgBlue)
	cyanColor    = color.New(color.FgCyan)
	whiteColor   = color.New(color.FgWhite)
	yellowColor  = color.New(color.FgYellow)
	magnetaColor = color.New(color.FgMagenta)
	grayColor    = color.New(color.FgHiBlack)
)

type ColorFn func(format string, a ...any) string

// MaybeColor formats with fn unless coloring is disabled, either via
// the passed flag or globally through the color package.
func MaybeColor(fn ColorFn, disabled bool, format string, a ...any) string {
	if disabled {
		return fmt.Sprintf(format, a...)
	}
	return fn(format, a...)
}

func MakeRed(format string, a ...any) string {
	return redColor.Sprintf(format, a...)
}

func MakeBlue(format string, a ...any) string {
	return blueColor.Sprintf(format, a...)
}

func MakeCyan(format string, a ...any) string {
	return cyanColor.Sprintf(format, a...)
}

func MakeWhite(format string, a ...any) string {
	return whiteColor.Sprintf(format, a...)
}

func MakeYellow(format string, a ...any) string {
	return yellowColor.Sprintf(format, a...)
}

func MakeMagneta(format string, a ...any) string {
	return magnetaColor.Sprintf(format, a...)
}

func MakeGray(format string, a ...any) string {
	return grayColor.Sprintf(format, a...)
}
