package programmer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Mark-G1/fpicprog/protocol"
)

// MockSink records every write for inspection
type MockSink struct {
	writes   [][]byte
	writeErr error
	limit    int // accept at most limit bytes per write when > 0
}

func (m *MockSink) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	n := len(p)
	if m.limit > 0 && n > m.limit {
		n = m.limit
	}
	m.writes = append(m.writes, append([]byte(nil), p[:n]...))
	return n, nil
}

// recordingSleeper records requested delays instead of sleeping
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

// Mock logger for testing
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

var testDevice = &protocol.DeviceInfo{
	Name:   "PIC16F1847",
	Family: protocol.FamilyPIC16,
	Timing: protocol.Timing{
		BulkErase:   5 * time.Millisecond,
		BlockWrite:  2500 * time.Microsecond,
		ConfigWrite: 5 * time.Millisecond,
	},
	ChipErase: protocol.Recipe{0x00, 0x09, 0x0B},
	DataErase: protocol.Recipe{0x0B},
	DataWrite: protocol.Recipe{0x08},
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		sink    io.Writer
		options []Option
	}{
		{name: "with no options", sink: &MockSink{}},
		{name: "with logger", sink: &MockSink{}, options: []Option{WithLogger(&MockLogger{})}},
		{
			name: "with all options",
			sink: &MockSink{},
			options: []Option{
				WithLogger(&MockLogger{}),
				WithProgressCallback(func(Progress) {}),
				WithSleeper((&recordingSleeper{}).Sleep),
				WithDevice(testDevice),
				WithMinDelay(time.Millisecond),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := New(tt.sink, tt.options...)
			if prog == nil {
				t.Fatal("New returned nil")
			}
			if prog.config.Sleep == nil {
				t.Error("Sleep should never be nil")
			}
		})
	}
}

func TestNewPanicsOnNilSink(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil sink")
		}
	}()
	New(nil)
}

func TestRunWritesStepsInOrder(t *testing.T) {
	sink := &MockSink{}
	sleeper := &recordingSleeper{}
	prog := New(sink, WithSleeper(sleeper.Sleep))

	seq := protocol.TimedSequence{
		{Data: protocol.PinStates{0x01, 0x02}, Delay: time.Millisecond},
		{Data: protocol.PinStates{0x03}},
		{Data: nil, Delay: 2 * time.Millisecond},
		{Data: protocol.PinStates{0x04, 0x05, 0x06}, Delay: 3 * time.Microsecond},
	}

	if err := prog.Run(context.Background(), seq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWrites := [][]byte{{0x01, 0x02}, {0x03}, {0x04, 0x05, 0x06}}
	if len(sink.writes) != len(wantWrites) {
		t.Fatalf("writes = %d, want %d", len(sink.writes), len(wantWrites))
	}
	for i := range wantWrites {
		if !bytes.Equal(sink.writes[i], wantWrites[i]) {
			t.Errorf("write %d = %v, want %v", i, sink.writes[i], wantWrites[i])
		}
	}

	wantDelays := []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Microsecond}
	if len(sleeper.delays) != len(wantDelays) {
		t.Fatalf("delays = %v, want %v", sleeper.delays, wantDelays)
	}
	for i := range wantDelays {
		if sleeper.delays[i] != wantDelays[i] {
			t.Errorf("delay %d = %v, want %v", i, sleeper.delays[i], wantDelays[i])
		}
	}
}

func TestRunMinDelay(t *testing.T) {
	sleeper := &recordingSleeper{}
	prog := New(&MockSink{}, WithSleeper(sleeper.Sleep), WithMinDelay(time.Millisecond))

	seq := protocol.TimedSequence{
		{Data: protocol.PinStates{1}, Delay: 20 * time.Microsecond},
		{Data: protocol.PinStates{2}},
		{Data: protocol.PinStates{3}, Delay: 5 * time.Millisecond},
	}

	if err := prog.Run(context.Background(), seq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Duration{time.Millisecond, 5 * time.Millisecond}
	if len(sleeper.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", sleeper.delays, want)
	}
	for i := range want {
		if sleeper.delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, sleeper.delays[i], want[i])
		}
	}
}

func TestRunWriteError(t *testing.T) {
	logger := &MockLogger{}
	sink := &MockSink{writeErr: errors.New("device unplugged")}
	prog := New(sink, WithLogger(logger), WithSleeper((&recordingSleeper{}).Sleep))

	err := prog.Run(context.Background(), protocol.DeviceEntrySequence())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "device unplugged") {
		t.Errorf("error = %v, want wrapped write error", err)
	}
	if len(logger.errorMsgs) != 1 {
		t.Errorf("error logs = %d, want 1", len(logger.errorMsgs))
	}
}

func TestRunShortWrite(t *testing.T) {
	sink := &MockSink{limit: 2}
	prog := New(sink, WithSleeper((&recordingSleeper{}).Sleep))

	err := prog.Run(context.Background(), protocol.TimedSequence{{Data: protocol.PinStates{1, 2, 3}}})

	var swe *ShortWriteError
	if !errors.As(err, &swe) {
		t.Fatalf("error = %v, want *ShortWriteError", err)
	}
	if swe.Written != 2 || swe.Expected != 3 || swe.Step != 0 {
		t.Errorf("ShortWriteError = %+v", swe)
	}
}

func TestRunCancelled(t *testing.T) {
	sink := &MockSink{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prog := New(sink, WithSleeper((&recordingSleeper{}).Sleep))
	err := prog.Run(ctx, protocol.DeviceEntrySequence())

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(sink.writes) != 0 {
		t.Errorf("writes = %d, want 0", len(sink.writes))
	}
}

func TestRunCancelledDuringDelay(t *testing.T) {
	sink := &MockSink{}
	ctx, cancel := context.WithCancel(context.Background())

	sleep := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	prog := New(sink, WithSleeper(sleep))
	err := prog.Run(ctx, protocol.DeviceEntrySequence())

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(sink.writes) != 1 {
		t.Errorf("writes = %d, want 1", len(sink.writes))
	}
}

func TestEnterProgramMode(t *testing.T) {
	sink := &MockSink{}
	sleeper := &recordingSleeper{}
	var phases []string

	prog := New(sink,
		WithSleeper(sleeper.Sleep),
		WithProgressCallback(func(p Progress) { phases = append(phases, p.Phase) }),
	)

	if err := prog.EnterProgramMode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.writes) != 3 || len(sink.writes[1]) != 65 {
		t.Errorf("unexpected writes: %d", len(sink.writes))
	}

	want := []string{PhaseEntering, PhaseEntering, PhaseEntering, PhaseComplete}
	if strings.Join(phases, ",") != strings.Join(want, ",") {
		t.Errorf("phases = %v, want %v", phases, want)
	}
}

func TestExecute(t *testing.T) {
	sink := &MockSink{}
	sleeper := &recordingSleeper{}
	logger := &MockLogger{}
	var last Progress

	prog := New(sink,
		WithDevice(testDevice),
		WithSleeper(sleeper.Sleep),
		WithLogger(logger),
		WithProgressCallback(func(p Progress) { last = p }),
	)

	if err := prog.Execute(context.Background(), protocol.SequenceChipErase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := protocol.Pic16Generator{}.CompileRecipe(testDevice.ChipErase, testDevice.Timing)
	if len(sink.writes) != len(want) {
		t.Fatalf("writes = %d, want %d", len(sink.writes), len(want))
	}
	for i := range want {
		if !bytes.Equal(sink.writes[i], want[i].Data.Bytes()) {
			t.Errorf("write %d differs from compiled recipe", i)
		}
	}

	if len(sleeper.delays) != 2 || sleeper.delays[0] != 5*time.Millisecond || sleeper.delays[1] != 5*time.Millisecond {
		t.Errorf("delays = %v, want two bulk erase delays", sleeper.delays)
	}

	if last.Phase != PhaseComplete || last.Percentage != 100 || last.Operation != "chip-erase" {
		t.Errorf("final progress = %+v", last)
	}
	if last.BytesWritten != want.Len() {
		t.Errorf("BytesWritten = %d, want %d", last.BytesWritten, want.Len())
	}

	if len(logger.debugMsgs) == 0 || len(logger.infoMsgs) == 0 {
		t.Error("expected debug and info log messages")
	}
}

func TestExecuteErrors(t *testing.T) {
	t.Run("no device", func(t *testing.T) {
		prog := New(&MockSink{})
		if err := prog.Execute(context.Background(), protocol.SequenceChipErase); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("invalid recipe", func(t *testing.T) {
		sink := &MockSink{}
		dev := *testDevice
		dev.DataWrite = protocol.Recipe{0x02}
		prog := New(sink, WithDevice(&dev))

		err := prog.Execute(context.Background(), protocol.SequenceWriteData)
		if !protocol.IsParseError(err) {
			t.Fatalf("error = %v, want ParseError", err)
		}
		if len(sink.writes) != 0 {
			t.Error("nothing should be written for an invalid recipe")
		}
	})

	t.Run("empty recipe", func(t *testing.T) {
		sink := &MockSink{}
		dev := *testDevice
		dev.ChipErase = nil
		prog := New(sink, WithDevice(&dev))

		err := prog.Execute(context.Background(), protocol.SequenceChipErase)

		var ere *EmptyRecipeError
		if !errors.As(err, &ere) {
			t.Fatalf("error = %v, want *EmptyRecipeError", err)
		}
		if ere.Device != "PIC16F1847" || ere.Type != protocol.SequenceChipErase {
			t.Errorf("EmptyRecipeError = %+v", ere)
		}
		if len(sink.writes) != 0 {
			t.Error("nothing should be written for an empty recipe")
		}
	})

	t.Run("unsupported operation", func(t *testing.T) {
		sink := &MockSink{}
		prog := New(sink, WithDevice(testDevice))

		err := prog.Execute(context.Background(), protocol.SequenceBulkErase)

		var use *UnsupportedSequenceError
		if !errors.As(err, &use) {
			t.Fatalf("error = %v, want *UnsupportedSequenceError", err)
		}
		if len(sink.writes) != 0 {
			t.Error("nothing should be written for an unsupported operation")
		}
	})
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Microsecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
