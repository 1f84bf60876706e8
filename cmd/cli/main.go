// Command boardbot reads a JobInput JSON from a file argument (or stdin),
// runs the drawing job, and writes the JobLog JSON to stdout.
//
// With -plan only the job plan is printed. With -serial the spool commands
// are also streamed to a motor controller. -plot and -svg export the speed
// profile and the traced path.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rgyhuang/BoardBot/internal/actuator"
	"github.com/rgyhuang/BoardBot/internal/engine"
	"github.com/rgyhuang/BoardBot/internal/integrator"
	"github.com/rgyhuang/BoardBot/internal/kinematics"
	"github.com/rgyhuang/BoardBot/internal/logging"
	"github.com/rgyhuang/BoardBot/internal/render"
)

var (
	logLevel = flag.String("log", "error", "log level: debug, error or off")
	planOnly = flag.Bool("plan", false, "print the job plan and exit without running")
	plotFile = flag.String("plot", "", "write a speed profile chart to this file")
	svgFile  = flag.String("svg", "", "write the traced path as SVG to this file")
	travel   = flag.Bool("travel", false, "include pen-up moves in the SVG")
	device   = flag.String("serial", "", "stream spool commands to this serial device")
	baud     = flag.Int("baud", 115200, "serial baud rate")
)

func main() {
	flag.Parse()
	if err := logging.Setup(*logLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	var (
		data []byte
		err  error
	)
	if flag.NArg() > 0 {
		data, err = os.ReadFile(flag.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	if err := run(data); err != nil {
		logging.Error.Printf("job error: %v", err)
		os.Exit(1)
	}
}

func run(data []byte) error {
	var input engine.JobInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("invalid input JSON: %w", err)
	}
	job, err := engine.NewJob(input)
	if err != nil {
		return err
	}
	if *planOnly {
		return printJSON(job.Plan())
	}

	var sink actuator.Sink = actuator.Discard{}
	if *device != "" {
		if sink, err = actuator.OpenSerial(*device, *baud); err != nil {
			return err
		}
	}
	jobLog, err := job.Run(sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if *plotFile != "" {
		if err := plotProfile(job.Path().Profile(), *plotFile); err != nil {
			return err
		}
	}
	if *svgFile != "" {
		if err := writeSVG(*svgFile, jobLog); err != nil {
			return err
		}
	}

	return printJSON(jobLog)
}

// plotProfile charts p into file. A profile with nothing to chart is
// skipped so the job log is still printed.
func plotProfile(p kinematics.Profile, file string) error {
	err := render.ProfilePlot(p, 500, file)
	if errors.Is(err, render.ErrEmpty) {
		logging.Debug.Printf("skipping plot %s: %v", file, err)
		return nil
	}
	return err
}

func printJSON(v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func writeSVG(file string, jobLog engine.JobLog) error {
	ticks := make([]integrator.Tick, len(jobLog.Output))
	for i, row := range jobLog.Output {
		ticks[i] = row.Tick
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	opts := render.TraceOptions{Title: jobLog.Meta.JobID, Travel: *travel}
	if err := render.TraceSVG(f, ticks, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
