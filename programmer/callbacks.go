package programmer

import (
	"context"
	"time"
)

// Progress phases.
const (
	PhaseEntering = "entering"
	PhaseRunning  = "running"
	PhaseComplete = "complete"
)

// Progress contains information about a running sequence.
// Passed to ProgressCallback after every step.
type Progress struct {
	// Phase describes the current operation phase:
	//   "entering" - Running the device entry sequence
	//   "running"  - Running an operation sequence
	//   "complete" - The sequence finished
	Phase string

	// Operation is the name of the sequence being run
	Operation string

	// Step is the number of steps completed
	Step int

	// TotalSteps is the number of steps in the sequence
	TotalSteps int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the number of pin states written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since the sequence started
	ElapsedTime time.Duration
}

// ProgressCallback is called after every step to report progress.
// Implementations should return quickly; the target is mid-operation.
//
// Example:
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("[%s] %s %d/%d\n", p.Phase, p.Operation, p.Step, p.TotalSteps)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
//
// Example with logrus:
//
//	type logrusLogger struct{ l *logrus.Logger }
//	func (a logrusLogger) Debug(msg string, kv ...interface{}) { a.l.WithFields(fields(kv)).Debug(msg) }
//	...
//
//	prog := programmer.New(port, programmer.WithLogger(logrusLogger{logrus.StandardLogger()}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error
