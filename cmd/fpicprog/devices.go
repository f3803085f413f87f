package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/devicedb"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices in the device database.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := loadDatabase(cmd)
		if err != nil {
			fail(err)
		}

		if err := listDevices(cmd.OutOrStdout(), db); err != nil {
			fail(err)
		}
	},
}

func listDevices(w io.Writer, db *devicedb.Database) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFAMILY\tID\tPROGRAM\tDATA\tOPERATIONS")

	for _, name := range db.Names() {
		dev, err := db.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t0x%04X\t%d\t%d\t%s\n",
			dev.Name, dev.Family, dev.DeviceID, dev.ProgramMemorySize, dev.DataMemorySize,
			supportedNames(dev.Family))
	}

	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
