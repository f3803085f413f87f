package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/devicedb"
	"github.com/Mark-G1/fpicprog/protocol"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Report an error and terminate with a failure status.
func fail(err error) {
	log.Error(err)
	os.Exit(1)
}

// Load the device database named by --db, or the built-in one.
func loadDatabase(cmd *cobra.Command) (*devicedb.Database, error) {
	path := getString(cmd, "db")
	if path == "" {
		log.Debug("using built-in device database")
		return devicedb.Default()
	}

	log.WithField("path", path).Debug("loading device database")

	return devicedb.Parse(path)
}

// Resolve a device and an operation name, rejecting operations the device
// family does not implement.
func resolveOperation(db *devicedb.Database, device, operation string) (*protocol.DeviceInfo, protocol.SequenceType, error) {
	dev, err := db.Lookup(device)
	if err != nil {
		return nil, 0, err
	}

	op, err := protocol.ParseSequenceType(operation)
	if err != nil {
		return nil, 0, err
	}

	if !protocol.Supports(dev.Family, op) {
		return nil, 0, fmt.Errorf("device %s (%s) does not support operation %s; supported: %s",
			dev.Name, dev.Family, op, supportedNames(dev.Family))
	}

	return dev, op, nil
}

func supportedNames(f protocol.Family) string {
	var names []string
	for _, t := range protocol.SupportedSequences(f) {
		names = append(names, t.String())
	}

	return strings.Join(names, ", ")
}
