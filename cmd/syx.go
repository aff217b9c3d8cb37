// Package cmd provides command-line interface for S-10 SysEx dump processing.
// This file contains commands for decoding dumps and listing their frames.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/hansbonini/s10tools/pkg"
	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/s10"
	"github.com/spf13/cobra"
)

// syxCmd represents the parent command for all SysEx dump operations.
var syxCmd = &cobra.Command{
	Use:   "syx",
	Short: "Process Roland S-10 SysEx dumps",
	Long: `Process SysEx dumps recorded from a Roland S-10 sampler.

Commands:
  decode    Decode a dump to a YAML description and WAV files
  frames    List the SysEx frames of a dump

Examples:
  s10tools syx decode dump.syx ./output/
  s10tools syx frames dump.syx`,
}

// syxDecodeCmd decodes a SysEx dump into a sample description.
var syxDecodeCmd = &cobra.Command{
	Use:   "decode [input_file] [output_directory]",
	Short: "Decode a SysEx dump",
	Long: `Decode a Roland S-10 SysEx dump.

Output:
  - sample.yaml with bank parameters, sampling structure and statistics
  - waves/ with one 16-bit mono WAV file per waveform
  - blocks/ with QuickDisk block files (with --blocks)

A dump whose wave data runs past the 256 KiB sample memory is still
exported; the command then exits with an error.

Example:
  s10tools syx decode -v dump.syx ./output/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputDir := args[1]

		// Enable verbose mode if requested
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error getting verbose flag: %w", err)
		}
		common.SetVerboseMode(verbose)

		withBlocks, err := cmd.Flags().GetBool("blocks")
		if err != nil {
			return fmt.Errorf("error getting blocks flag: %w", err)
		}

		processor := pkg.NewSyxProcessor()
		processor.WithBlocks = withBlocks

		fmt.Printf("Processing SysEx dump: %s\n", inputFile)
		fmt.Printf("Output directory: %s\n", outputDir)

		if err := processor.Process(inputFile, outputDir); err != nil {
			if errors.Is(err, s10.ErrMemoryExhausted) {
				fmt.Println("Partial sample exported.")
			}
			return fmt.Errorf("failed to process SysEx dump: %w", err)
		}

		fmt.Println("SysEx dump decoded successfully!")
		return nil
	},
}

// syxFramesCmd lists every SysEx frame of a dump with its decoded header.
var syxFramesCmd = &cobra.Command{
	Use:   "frames [input_file]",
	Short: "List the SysEx frames of a dump",
	Long: `List the SysEx frames of a dump with offset, channel, command and
address target. Frames from other devices are marked as ignored.

Example:
  s10tools syx frames dump.syx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()

		listing, err := pkg.NewSyxDecoder().ListFrames(file)
		if err != nil {
			return fmt.Errorf("failed to list frames: %w", err)
		}

		for _, frame := range listing {
			if frame.Err != nil {
				fmt.Printf("%08X  %v\n", frame.Offset, frame.Err)
				continue
			}
			fmt.Printf("%08X  %s\n", frame.Offset, frame.Info)
		}
		fmt.Printf("%d frames\n", len(listing))
		return nil
	},
}

// init initializes the syx command and its subcommands with appropriate flags.
func init() {
	rootCmd.AddCommand(syxCmd)

	syxCmd.AddCommand(syxDecodeCmd)
	syxCmd.AddCommand(syxFramesCmd)

	verboseFlag(syxDecodeCmd)
	verboseFlag(syxFramesCmd)

	syxDecodeCmd.Flags().BoolP("blocks", "b", false, "Also write QuickDisk block files for each bank")
}
