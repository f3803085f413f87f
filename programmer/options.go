package programmer

import (
	"context"
	"time"

	"github.com/Mark-G1/fpicprog/protocol"
)

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called after every step (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Sleep waits out step delays
	Sleep Sleeper

	// Device supplies the timings and recipes for Execute (optional)
	Device *protocol.DeviceInfo

	// MinDelay is the shortest delay the transport can honour. Non-zero step
	// delays below it are rounded up.
	MinDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Sleep: sleepContext,
	}
}

// sleepContext is the default Sleeper.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track sequence progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
//
// Example:
//
//	prog := programmer.New(port, programmer.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSleeper replaces the function used to wait out step delays.
// Tests use this to record delays instead of sleeping.
func WithSleeper(sleep Sleeper) Option {
	return func(c *Config) {
		if sleep != nil {
			c.Sleep = sleep
		}
	}
}

// WithDevice sets the target device used by Execute.
//
// Example:
//
//	dev, _ := db.Lookup("PIC16F1847")
//	prog := programmer.New(port, programmer.WithDevice(dev))
func WithDevice(dev *protocol.DeviceInfo) Option {
	return func(c *Config) {
		c.Device = dev
	}
}

// WithMinDelay sets the shortest delay the transport can honour.
func WithMinDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.MinDelay = d
		}
	}
}
