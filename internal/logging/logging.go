// Package logging holds the process-wide debug and error loggers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

const flags = log.LstdFlags | log.Lshortfile | log.Lmsgprefix

// Debug and Error are the shared loggers. Debug is silent until Setup
// enables it.
var (
	Debug = log.New(io.Discard, "DEBUG ", flags)
	Error = log.New(os.Stderr, "ERROR ", flags)
)

// Setup configures the loggers for level "debug", "error" or "off".
// An empty level means "error". Output goes to w; nil means os.Stderr.
func Setup(level string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	switch level {
	case "debug":
		Debug = log.New(w, "DEBUG ", flags)
		Error = log.New(w, "ERROR ", flags)
	case "error", "":
		Debug = log.New(io.Discard, "DEBUG ", flags)
		Error = log.New(w, "ERROR ", flags)
	case "off":
		Debug = log.New(io.Discard, "DEBUG ", flags)
		Error = log.New(io.Discard, "ERROR ", flags)
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	log.SetPrefix("INFO ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetOutput(w)
	return nil
}
