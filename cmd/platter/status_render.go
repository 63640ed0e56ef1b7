package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type checkKind int

const (
	checkInfo checkKind = iota
	checkOK
	checkWarn
	checkError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const checkLabelWidth = 12

func renderCheckLine(label string, kind checkKind, message string, colorize bool) string {
	state := checkKindLabel(kind)
	if message != "" {
		state = fmt.Sprintf("[%s] %s", state, message)
	} else {
		state = fmt.Sprintf("[%s]", state)
	}
	line := fmt.Sprintf("  %-*s %s", checkLabelWidth, label+":", state)
	if colorize {
		if color := checkKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func checkKindLabel(kind checkKind) string {
	switch kind {
	case checkOK:
		return "OK"
	case checkWarn:
		return "WARN"
	case checkError:
		return "MISSING"
	default:
		return "INFO"
	}
}

func checkKindColor(kind checkKind) string {
	switch kind {
	case checkOK:
		return ansiGreen
	case checkWarn:
		return ansiYellow
	case checkError:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
