// Package cmd provides command-line interface functionality for S10Tools.
// S10Tools is a collection of utilities for recovering samples from the
// Roland S-10 sampler: SysEx dump decoding and QuickDisk stream coding.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the S10Tools application.
var rootCmd = &cobra.Command{
	Use:   "s10tools",
	Short: "Tools for Roland S-10 SysEx dumps and QuickDisk streams",
	Long: `S10Tools - A collection of utilities for recovering samples from the
Roland S-10 sampler.

Currently supports:
  - SysEx dumps (decode to YAML + WAV, list frames)
  - QuickDisk streams (MFM encode/decode, sync search, bit order table, CRC-16)
  - QuickDisk blocks (format, parameter and wave blocks per bank)

Examples:
  s10tools syx decode dump.syx ./output/
  s10tools syx decode -v --blocks dump.syx ./output/
  s10tools syx frames dump.syx
  s10tools qd mfm encode track.bin track.mfm
  s10tools qd mfm decode --block 1 capture.mfm track.bin
  s10tools qd crc check --init 0x0000 block.bin

Use 's10tools [command] --help' for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// verboseFlag registers the -v flag shared by every leaf command
func verboseFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
}

// applyVerbose reads the -v flag into common.VerboseMode
func applyVerbose(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("error getting verbose flag: %w", err)
	}
	common.SetVerboseMode(verbose)
	return nil
}
