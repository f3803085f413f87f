package programmer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Mark-G1/fpicprog/protocol"
)

// Programmer clocks timed sequences out to a bit-banging programmer.
// Each step's pin states are written to the sink in a single Write call,
// followed by the step delay.
//
// A Programmer must not be used by more than one goroutine at a time.
type Programmer struct {
	sink   io.Writer
	config Config
}

// New creates a new Programmer writing pin states to sink.
//
// Example:
//
//	port, _ := os.OpenFile("/dev/ttyUSB0", os.O_WRONLY, 0)
//	prog := programmer.New(port,
//	    programmer.WithDevice(dev),
//	    programmer.WithLogger(myLogger),
//	)
func New(sink io.Writer, opts ...Option) *Programmer {
	if sink == nil {
		panic("sink cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		sink:   sink,
		config: cfg,
	}
}

// EnterProgramMode runs the device entry sequence.
func (p *Programmer) EnterProgramMode(ctx context.Context) error {
	return p.run(ctx, PhaseEntering, protocol.SequenceInit.String(), protocol.DeviceEntrySequence())
}

// Execute builds the requested operation for the configured device and runs it.
// Operations the device family does not implement are rejected with
// *UnsupportedSequenceError, missing recipes with *EmptyRecipeError and
// invalid recipes with a wrapped *protocol.ParseError, before anything is
// sent.
//
// Example:
//
//	if err := prog.EnterProgramMode(ctx); err != nil {
//	    return err
//	}
//	err := prog.Execute(ctx, protocol.SequenceChipErase)
func (p *Programmer) Execute(ctx context.Context, op protocol.SequenceType) error {
	dev := p.config.Device
	if dev == nil {
		return fmt.Errorf("no device configured")
	}

	if !protocol.Supports(dev.Family, op) {
		return &UnsupportedSequenceError{Device: dev.Name, Family: dev.Family, Type: op}
	}

	if recipe, ok := dev.Recipe(op); ok {
		if len(recipe) == 0 {
			return &EmptyRecipeError{Device: dev.Name, Type: op}
		}
		if err := protocol.ValidateRecipe(recipe); err != nil {
			return fmt.Errorf("device %s: %s: %w", dev.Name, op, err)
		}
	}

	gen, err := protocol.NewGenerator(dev.Family)
	if err != nil {
		return err
	}

	seq := gen.BuildOperation(op, dev)
	p.logDebug("built sequence",
		"device", dev.Name,
		"operation", op.String(),
		"steps", len(seq),
		"pin_states", seq.Len(),
		"total_delay", seq.TotalDelay().String(),
	)

	phase := PhaseRunning
	if op == protocol.SequenceInit {
		phase = PhaseEntering
	}
	return p.run(ctx, phase, op.String(), seq)
}

// Run sends an arbitrary timed sequence.
func (p *Programmer) Run(ctx context.Context, seq protocol.TimedSequence) error {
	return p.run(ctx, PhaseRunning, "sequence", seq)
}

func (p *Programmer) run(ctx context.Context, phase, name string, seq protocol.TimedSequence) error {
	startTime := time.Now()
	bytesWritten := 0

	for i, step := range seq {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		if len(step.Data) > 0 {
			n, err := p.sink.Write(step.Data.Bytes())
			bytesWritten += n
			if err != nil {
				p.logError("write failed", "operation", name, "step", i, "error", err)
				return fmt.Errorf("%s step %d: write: %w", name, i, err)
			}
			if n != len(step.Data) {
				return &ShortWriteError{Step: i, Written: n, Expected: len(step.Data)}
			}
		}

		if delay := p.delayFor(step.Delay); delay > 0 {
			if err := p.config.Sleep(ctx, delay); err != nil {
				return fmt.Errorf("cancelled: %w", err)
			}
		}

		p.reportProgress(Progress{
			Phase:        phase,
			Operation:    name,
			Step:         i + 1,
			TotalSteps:   len(seq),
			Percentage:   float64(i+1) / float64(len(seq)) * 100,
			BytesWritten: bytesWritten,
			ElapsedTime:  time.Since(startTime),
		})
	}

	p.reportProgress(Progress{
		Phase:        PhaseComplete,
		Operation:    name,
		Step:         len(seq),
		TotalSteps:   len(seq),
		Percentage:   100,
		BytesWritten: bytesWritten,
		ElapsedTime:  time.Since(startTime),
	})

	p.logInfo("sequence complete",
		"operation", name,
		"steps", len(seq),
		"pin_states", bytesWritten,
		"elapsed", time.Since(startTime).String(),
	)

	return nil
}

// delayFor applies the transport's minimum delay to a step delay.
func (p *Programmer) delayFor(d time.Duration) time.Duration {
	if d > 0 && d < p.config.MinDelay {
		return p.config.MinDelay
	}
	return d
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Programmer) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
