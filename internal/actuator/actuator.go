// Package actuator delivers per-tick spool commands to whatever drives the
// stepper motors: a serial-attached controller, an in-memory recorder or
// nothing at all.
package actuator

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/rgyhuang/BoardBot/internal/cable"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// Command is the velocity command for one tick.
type Command struct {
	T     float64           `json:"t"`     // seconds since the start of the job
	Spool cable.Rates       `json:"spool"` // spool angular velocities, rad/s
	Pen   waypoint.PenState `json:"pen"`
}

// Sink consumes commands at the tick rate.
type Sink interface {
	Command(Command) error
	Close() error
}

// Discard drops every command.
type Discard struct{}

func (Discard) Command(Command) error { return nil }
func (Discard) Close() error          { return nil }

// Recorder keeps every command in memory.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Command(c Command) error {
	r.Commands = append(r.Commands, c)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Line writes one text line per command:
//
//	V <t> <w1> <w2> <pen>
//
// with t in seconds, w1 and w2 in rad/s and pen 0 (up) or 1 (down).
type Line struct {
	w   *bufio.Writer
	dst io.WriteCloser
}

// NewLine returns a Line sink writing to dst.
func NewLine(dst io.WriteCloser) *Line {
	return &Line{w: bufio.NewWriter(dst), dst: dst}
}

// OpenSerial opens a serial port and returns a Line sink writing to it.
func OpenSerial(name string, baud int) (*Line, error) {
	cfg := &serial.Config{Name: name, Baud: baud, ReadTimeout: 100 * time.Millisecond}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", name, err)
	}
	return NewLine(port), nil
}

func (l *Line) Command(c Command) error {
	if _, err := fmt.Fprintf(l.w, "V %.6f %.6f %.6f %d\n", c.T, c.Spool.W1, c.Spool.W2, int(c.Pen)); err != nil {
		return err
	}
	// Each command must leave the host within its own tick.
	return l.w.Flush()
}

func (l *Line) Close() error {
	if err := l.w.Flush(); err != nil {
		l.dst.Close()
		return err
	}
	return l.dst.Close()
}
