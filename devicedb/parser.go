package devicedb

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Mark-G1/fpicprog/protocol"
)

//go:embed devices.toml
var builtinDatabase string

var (
	defaultOnce sync.Once
	defaultDB   *Database
	defaultErr  error
)

// Default returns the built-in device database.
func Default() (*Database, error) {
	defaultOnce.Do(func() {
		defaultDB, defaultErr = ParseReader(strings.NewReader(builtinDatabase))
	})
	return defaultDB, defaultErr
}

// file mirrors the TOML layout of a device table.
type file struct {
	Devices []deviceEntry `toml:"device"`
}

type deviceEntry struct {
	Name              string      `toml:"name"`
	Family            string      `toml:"family"`
	DeviceID          uint16      `toml:"device-id"`
	ProgramMemorySize uint32      `toml:"program-memory-size"`
	DataMemorySize    uint32      `toml:"data-memory-size"`
	Timing            timingEntry `toml:"timing"`
	Recipes           recipeEntry `toml:"recipes"`
}

type timingEntry struct {
	BulkErase   *duration `toml:"bulk-erase"`
	BlockWrite  *duration `toml:"block-write"`
	ConfigWrite *duration `toml:"config-write"`
}

type recipeEntry struct {
	ChipErase []string `toml:"chip-erase"`
	DataErase []string `toml:"data-erase"`
	DataWrite []string `toml:"data-write"`
}

// duration decodes Go duration strings such as "2.5ms".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	*d = duration(v)
	return nil
}

// Parse parses a device table from the given file path.
//
// Example:
//
//	db, err := devicedb.Parse("devices.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// ParseReader parses a device table from any io.Reader.
// Unknown keys are rejected. PIC16 devices must define all three recipes,
// and every recipe is validated with protocol.ValidateRecipe before the
// database is returned.
func ParseReader(r io.Reader) (*Database, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode device table: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in device table: %s", strings.Join(keys, ", "))
	}

	if len(f.Devices) == 0 {
		return nil, fmt.Errorf("no devices found")
	}

	db := &Database{devices: make(map[string]*protocol.DeviceInfo, len(f.Devices))}
	for i, entry := range f.Devices {
		dev, err := buildDevice(i, entry)
		if err != nil {
			return nil, err
		}

		key := normalizeName(dev.Name)
		if _, dup := db.devices[key]; dup {
			return nil, &DeviceError{Index: i, Name: dev.Name, Err: errors.New("duplicate device name")}
		}
		db.devices[key] = dev
	}

	return db, nil
}

// buildDevice converts one table entry into device information.
func buildDevice(index int, entry deviceEntry) (*protocol.DeviceInfo, error) {
	fail := func(field string, err error) error {
		return &DeviceError{Index: index, Name: entry.Name, Field: field, Err: err}
	}

	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return nil, fail("name", errors.New("missing device name"))
	}

	family, err := protocol.ParseFamily(entry.Family)
	if err != nil {
		return nil, fail("family", err)
	}

	dev := &protocol.DeviceInfo{
		Name:              name,
		Family:            family,
		DeviceID:          entry.DeviceID,
		ProgramMemorySize: entry.ProgramMemorySize,
		DataMemorySize:    entry.DataMemorySize,
	}

	switch family {
	case protocol.FamilyPIC18:
		if len(entry.Recipes.ChipErase)+len(entry.Recipes.DataErase)+len(entry.Recipes.DataWrite) > 0 {
			return nil, fail("recipes", errors.New("recipes are only supported for pic16 devices"))
		}
		dev.Timing = protocol.Timing{
			BulkErase:   entry.Timing.BulkErase.or(protocol.DefaultBulkEraseDelay),
			BlockWrite:  entry.Timing.BlockWrite.or(protocol.DefaultBlockWriteDelay),
			ConfigWrite: entry.Timing.ConfigWrite.or(protocol.DefaultConfigWriteDelay),
		}

	case protocol.FamilyPIC16:
		dev.Timing = protocol.Timing{
			BulkErase:   entry.Timing.BulkErase.or(0),
			BlockWrite:  entry.Timing.BlockWrite.or(0),
			ConfigWrite: entry.Timing.ConfigWrite.or(0),
		}

		recipes := []struct {
			field string
			src   []string
			dst   *protocol.Recipe
		}{
			{"recipes.chip-erase", entry.Recipes.ChipErase, &dev.ChipErase},
			{"recipes.data-erase", entry.Recipes.DataErase, &dev.DataErase},
			{"recipes.data-write", entry.Recipes.DataWrite, &dev.DataWrite},
		}
		for _, r := range recipes {
			recipe, err := parseRecipe(r.src)
			if err != nil {
				return nil, fail(r.field, err)
			}
			if err := checkRecipeTiming(recipe, entry.Timing); err != nil {
				return nil, fail(r.field, err)
			}
			*r.dst = recipe
		}
		for _, r := range recipes {
			if len(*r.dst) == 0 {
				return nil, fail(r.field, errors.New("missing recipe"))
			}
		}
	}

	return dev, nil
}

// parseRecipe converts recipe elements into command values and validates them.
func parseRecipe(elements []string) (protocol.Recipe, error) {
	if len(elements) == 0 {
		return nil, nil
	}

	recipe := make(protocol.Recipe, 0, len(elements))
	for i, el := range elements {
		op, err := protocol.ParseOpcode(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		recipe = append(recipe, op)
	}

	if err := protocol.ValidateRecipe(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// checkRecipeTiming ensures a recipe does not reach a flush point whose delay
// the device table leaves unspecified.
func checkRecipeTiming(recipe protocol.Recipe, timing timingEntry) error {
	for _, op := range recipe {
		switch protocol.Pic16Command(op) {
		case protocol.Pic16BulkEraseProgram, protocol.Pic16BulkEraseData:
			if timing.BulkErase == nil {
				return fmt.Errorf("%s requires timing.bulk-erase", protocol.Pic16Command(op))
			}
		case protocol.Pic16BeginProgrammingInternal, protocol.Pic16BeginProgrammingExternal:
			if timing.BlockWrite == nil {
				return fmt.Errorf("%s requires timing.block-write", protocol.Pic16Command(op))
			}
		}
	}
	return nil
}

func (d *duration) or(def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return time.Duration(*d)
}
