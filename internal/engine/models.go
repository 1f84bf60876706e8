package engine

import (
	"github.com/rgyhuang/BoardBot/internal/cable"
	"github.com/rgyhuang/BoardBot/internal/integrator"
	"github.com/rgyhuang/BoardBot/internal/kinematics"
	"github.com/rgyhuang/BoardBot/internal/path"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// JobMeta holds the identity and timing parameters for a drawing job.
type JobMeta struct {
	JobID       string            `json:"job_id"`
	TimeStep    float64           `json:"time_step"`              // seconds
	Method      integrator.Method `json:"method,omitempty"`       // "euler" or "rk4"; empty means rk4
	Resolution  int               `json:"resolution,omitempty"`   // arc-length samples per waypoint interval
	LogStride   int               `json:"log_stride,omitempty"`   // keep every n-th tick in the log; 0 means 1
	MaxDuration float64           `json:"max_duration,omitempty"` // seconds; 0 means run to completion
}

// JobInput is the JSON-serialisable input to the engine.
type JobInput struct {
	Meta   JobMeta                         `json:"job_meta"`
	Source waypoint.Source                 `json:"waypoints"`
	Limits kinematics.ConstantAcceleration `json:"limits"`
	Cable  cable.Geometry                  `json:"cable"`
	// Start is where the pointer rests before the job. When set, the pen is
	// carried up from Start to the first waypoint.
	Start *waypoint.Coordinate `json:"start,omitempty"`
}

// JobLogRow is the pointer state and spool command of one tick.
type JobLogRow struct {
	integrator.Tick
	Spool      cable.Rates `json:"spool"`                // rad/s; zero when degenerate
	Degenerate bool        `json:"degenerate,omitempty"` // no command was sent this tick
}

// JobLog is the complete output of a drawing job.
type JobLog struct {
	Meta        JobMeta           `json:"job_meta"`
	TotalLength float64           `json:"total_length"`
	Shape       kinematics.Shape  `json:"shape"`
	Phases      kinematics.Phases `json:"phases"`
	Ticks       int               `json:"ticks"`
	Fallbacks   int               `json:"fallbacks"`  // RK4 ticks integrated with Euler
	Degenerate  int               `json:"degenerate"` // ticks with no spool command
	Truncated   bool              `json:"truncated,omitempty"`
	Output      []JobLogRow       `json:"output"`
}

// JobPlan summarises a prepared job without running it.
type JobPlan struct {
	Meta        JobMeta             `json:"job_meta"`
	Waypoints   int                 `json:"waypoints"`
	TotalLength float64             `json:"total_length"`
	Shape       kinematics.Shape    `json:"shape"`
	Phases      kinematics.Phases   `json:"phases"`
	Duration    float64             `json:"duration"` // seconds
	Peak        float64             `json:"peak"`     // highest planned speed
	Start       waypoint.Coordinate `json:"start"`
	End         waypoint.Coordinate `json:"end"`
	Cables      cable.Lengths       `json:"cables"` // cable lengths at the start
}

// Job is a prepared drawing job.
type Job struct {
	meta  JobMeta
	path  *path.Path
	cable cable.Geometry
	start *waypoint.Coordinate
	count int
}
