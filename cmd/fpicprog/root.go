package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at link time with -ldflags "-X main.Version=...". When it is
// empty the module version from the build info is reported instead.
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fpicprog",
	Short: "A sequence generator for PIC in-circuit serial programming.",
	Long: `Generate the timed pin-state sequences that put a PIC microcontroller
into programming mode and erase or write it, and optionally clock them
out to a bit-banging programmer.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "debug") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("fpicprog ")
			if Version != "" {
				// Set with -ldflags
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		fmt.Println(cmd.UsageString())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().String("db", "", "device database file (defaults to the built-in table)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}
