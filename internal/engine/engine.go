// Package engine runs a drawing job.
//
// A job is prepared once: the waypoints are turned into a Path carrying its
// speed profile. Running it advances the pointer in fixed time steps. Each
// step has two parts:
//
//  1. Motion - the integrator moves the pointer along the path by one tick.
//
//  2. Command - the velocity applied over that tick is converted to spool
//     angular velocities at the pointer's position when the tick began and
//     handed to the actuator sink.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	uuid "github.com/satori/go.uuid"
	"zappem.net/pub/math/geom"

	"github.com/rgyhuang/BoardBot/internal/actuator"
	"github.com/rgyhuang/BoardBot/internal/cable"
	"github.com/rgyhuang/BoardBot/internal/integrator"
	"github.com/rgyhuang/BoardBot/internal/logging"
	"github.com/rgyhuang/BoardBot/internal/path"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// ErrRunaway is returned when the integrator keeps advancing long after the
// profile should have ended.
var ErrRunaway = errors.New("job did not complete")

// NewJob constructs a Job from a JobInput, building the path and checking
// the cable geometry.
func NewJob(input JobInput) (*Job, error) {
	meta := input.Meta
	if meta.JobID == "" {
		meta.JobID = uuid.NewV4().String()
	}
	if !(meta.TimeStep > 0) || math.IsInf(meta.TimeStep, 0) {
		return nil, fmt.Errorf("job %s: time step %g: %w", meta.JobID, meta.TimeStep, integrator.ErrConfig)
	}
	if meta.LogStride < 1 {
		meta.LogStride = 1
	}
	if meta.Resolution < 1 {
		meta.Resolution = path.DefaultResolution
	}
	if err := input.Cable.Validate(); err != nil {
		return nil, fmt.Errorf("job %s: %w", meta.JobID, err)
	}

	d := input.Source.Data
	if input.Start != nil && !startsAt(d, *input.Start) {
		d = waypoint.LeadIn(*input.Start, d)
	}
	p, err := path.New(d, input.Limits, path.WithResolution(meta.Resolution))
	if err != nil {
		return nil, fmt.Errorf("job %s: building path: %w", meta.JobID, err)
	}

	logging.Debug.Printf("job %s: %d waypoints, length %.6f, %s profile over %.6fs",
		meta.JobID, d.Len(), p.TotalLength(), p.Profile().Shape(), p.Profile().Duration())

	return &Job{meta: meta, path: p, cable: input.Cable, start: input.Start, count: d.Len()}, nil
}

// startsAt reports whether the first waypoint of d is c. A lead-in from
// there would add a zero-length interval.
func startsAt(d waypoint.Data, c waypoint.Coordinate) bool {
	if d.Len() == 0 {
		return false
	}
	return geom.Zeroish(math.Hypot(d.Xs[0]-c.X, d.Ys[0]-c.Y))
}

// Meta returns the job metadata with defaults applied.
func (j *Job) Meta() JobMeta { return j.meta }

// Path returns the prepared path.
func (j *Job) Path() *path.Path { return j.path }

// Plan summarises the prepared job.
func (j *Job) Plan() JobPlan {
	prof := j.path.Profile()
	start := j.path.Start()
	return JobPlan{
		Meta:        j.meta,
		Waypoints:   j.count,
		TotalLength: j.path.TotalLength(),
		Shape:       prof.Shape(),
		Phases:      prof.Phases(),
		Duration:    prof.Duration(),
		Peak:        prof.Peak(),
		Start:       start,
		End:         j.path.End(),
		Cables:      j.cable.Lengths(start.X, start.Y),
	}
}

// Run drives the job to completion, sending one command per tick to sink,
// and returns the log. The sink is not closed.
func (j *Job) Run(sink actuator.Sink) (JobLog, error) {
	var opts []integrator.Option
	if j.start != nil {
		opts = append(opts, integrator.WithStart(*j.start))
	}
	in, err := integrator.New(j.path, j.meta.TimeStep, j.meta.Method, opts...)
	if err != nil {
		return JobLog{}, fmt.Errorf("job %s: %w", j.meta.JobID, err)
	}

	prof := j.path.Profile()
	log := JobLog{
		Meta:        j.meta,
		TotalLength: j.path.TotalLength(),
		Shape:       prof.Shape(),
		Phases:      prof.Phases(),
	}

	// The integrator stops on the first tick whose start time exceeds the
	// profile duration; two spare ticks absorb rounding in the time sum.
	limit := int(math.Ceil(prof.Duration()/j.meta.TimeStep)) + 2
	if j.meta.MaxDuration > 0 {
		if capped := int(math.Ceil(j.meta.MaxDuration / j.meta.TimeStep)); capped < limit {
			limit = capped
			log.Truncated = true
		}
	}

	for log.Ticks < limit {
		row, ok, err := j.step(in, sink)
		if err != nil {
			return JobLog{}, fmt.Errorf("job %s at t=%.4f: %w", j.meta.JobID, row.T, err)
		}
		if !ok {
			break
		}
		if row.Degenerate {
			log.Degenerate++
		}
		if log.Ticks%j.meta.LogStride == 0 {
			log.Output = append(log.Output, row)
		}
		log.Ticks++
	}

	log.Fallbacks = in.Fallbacks()
	if in.State() != integrator.StateComplete {
		if !log.Truncated {
			return JobLog{}, fmt.Errorf("job %s after %d ticks: %w", j.meta.JobID, log.Ticks, ErrRunaway)
		}
	} else {
		log.Truncated = false
	}
	logging.Debug.Printf("job %s: %d ticks, %d fallbacks, %d degenerate", j.meta.JobID, log.Ticks, log.Fallbacks, log.Degenerate)
	return log, nil
}

// step advances the integrator by one tick and sends the resulting command.
func (j *Job) step(in *integrator.Integrator, sink actuator.Sink) (JobLogRow, bool, error) {
	before := in.Log()
	tick, ok := in.Step()
	if !ok {
		return JobLogRow{}, false, nil
	}
	row := JobLogRow{Tick: tick}

	w, err := j.cable.AngularVelocities(before.X, before.Y, tick.Vx, tick.Vy)
	switch {
	case errors.Is(err, cable.ErrDegenerateGeometry):
		logging.Debug.Printf("job %s: skipping command at t=%.4f: %v", j.meta.JobID, tick.T, err)
		row.Degenerate = true
		return row, true, nil
	case err != nil:
		return row, false, err
	}
	row.Spool = w

	if err := sink.Command(actuator.Command{T: tick.T, Spool: w, Pen: tick.Pen}); err != nil {
		return row, false, fmt.Errorf("sending command: %w", err)
	}
	return row, true, nil
}

// PlanJSON accepts a JSON-encoded JobInput and returns the JSON-encoded
// JobPlan without running the job.
func PlanJSON(jsonInput string) (string, error) {
	var input JobInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}
	job, err := NewJob(input)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(job.Plan())
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	return string(out), nil
}

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded JobInput, runs the job without an actuator, and
// returns a JSON-encoded JobLog.
func RunJSON(jsonInput string) (string, error) {
	var input JobInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	job, err := NewJob(input)
	if err != nil {
		return "", err
	}

	jobLog, err := job.Run(actuator.Discard{})
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(jobLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
