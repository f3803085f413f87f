package devicedb

import (
	"sort"
	"strings"

	"github.com/Mark-G1/fpicprog/protocol"
)

// Database is a parsed device table.
//
// A Database is read-only after loading and safe for concurrent use.
type Database struct {
	devices map[string]*protocol.DeviceInfo
}

// Lookup returns the device with the given name, ignoring case.
// The returned value is a copy that the caller may modify.
//
// Example:
//
//	dev, err := db.Lookup("pic16f1847")
//	if err != nil {
//	    log.Fatal(err)
//	}
func (db *Database) Lookup(name string) (*protocol.DeviceInfo, error) {
	dev, ok := db.devices[normalizeName(name)]
	if !ok {
		return nil, &UnknownDeviceError{Name: name}
	}
	return cloneDevice(dev), nil
}

// Names returns all device names in sorted order.
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.devices))
	for _, dev := range db.devices {
		names = append(names, dev.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of devices in the database.
func (db *Database) Len() int {
	return len(db.devices)
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func cloneDevice(dev *protocol.DeviceInfo) *protocol.DeviceInfo {
	c := *dev
	c.ChipErase = append(protocol.Recipe(nil), dev.ChipErase...)
	c.DataErase = append(protocol.Recipe(nil), dev.DataErase...)
	c.DataWrite = append(protocol.Recipe(nil), dev.DataWrite...)
	return &c
}
