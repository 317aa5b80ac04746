//go:build windows

// Package stderr is a no-op on Windows, where audio output does not write
// to the console.
package stderr

import (
	"os"

	"go.uber.org/zap"
)

func Start(*zap.Logger) error { return nil }

func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func Stop() {}
