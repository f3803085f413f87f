package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/devicedb"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a device database file.",
	Long: `Parse a device database and check every entry: families, timings and
PIC16 recipes. Without a file argument the database selected by --db is
checked.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			db  *devicedb.Database
			err error
		)

		if len(args) == 1 {
			db, err = devicedb.Parse(args[0])
		} else {
			db, err = loadDatabase(cmd)
		}

		if err != nil {
			fail(err)
		}

		log.WithField("devices", db.Len()).Debug("device database is valid")
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d devices\n", db.Len())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
