package log

import (
	"fmt"
)

type Level byte

const (
	Debug Level = iota
	Info
	Warning
	Error
	None
)

type Prefix = string

func NewPrefix(tag Prefix) Prefix {
	return fmt.Sprintf("[%s] ", tag)
}

// ParseLevel maps a config string to a Level, defaulting to Info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warning":
		return Warning
	case "error":
		return Error
	case "none":
		return None
	default:
		return Info
	}
}
