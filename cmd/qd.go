// Package cmd provides command-line interface for QuickDisk stream processing.
// This file contains the MFM, bit order table, CRC, block and geometry commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/s10tools/pkg"
	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/qd"
	"github.com/spf13/cobra"
)

// qdCmd represents the parent command for all QuickDisk operations.
var qdCmd = &cobra.Command{
	Use:   "qd",
	Short: "Process Roland QuickDisk streams",
	Long: `Process raw Roland QuickDisk streams and blocks.

Commands:
  mfm       MFM encode, decode and sync search
  lut       Bit order table
  crc       CRC-16 check and table dump
  blocks    Build QuickDisk blocks from a SysEx dump
  geometry  Show the track layout

Examples:
  s10tools qd mfm encode track.bin track.mfm
  s10tools qd mfm decode --block 1 capture.mfm track.bin
  s10tools qd lut invert capture.raw capture.mfm
  s10tools qd crc check block.bin`,
}

var qdMfmCmd = &cobra.Command{
	Use:   "mfm",
	Short: "MFM encode, decode and sync search",
}

// qdMfmEncodeCmd modulates a plain file into a raw track image.
var qdMfmEncodeCmd = &cobra.Command{
	Use:   "encode [input_file] [output_file]",
	Short: "MFM encode a file",
	Long: `MFM encode a file. Each byte goes through the bit order table before
and after modulation, so the output is twice the size of the input.

Example:
  s10tools qd mfm encode track.bin track.mfm`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		if err := pkg.NewQDProcessor().Encode(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to encode MFM stream: %w", err)
		}
		return nil
	},
}

// qdMfmDecodeCmd demodulates a raw capture.
var qdMfmDecodeCmd = &cobra.Command{
	Use:   "decode [input_file] [output_file]",
	Short: "MFM decode a raw capture",
	Long: `MFM decode a raw capture. With --block N the capture is first aligned on
the N-th sync word (94 4A x7, 44 91). --cursor selects the first bit read.

Example:
  s10tools qd mfm decode --block 1 capture.mfm track.bin`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		block, err := cmd.Flags().GetInt("block")
		if err != nil {
			return fmt.Errorf("error getting block flag: %w", err)
		}
		cursor, err := cmd.Flags().GetInt("cursor")
		if err != nil {
			return fmt.Errorf("error getting cursor flag: %w", err)
		}

		if err := pkg.NewQDProcessor().Decode(args[0], args[1], block, cursor); err != nil {
			return fmt.Errorf("failed to decode MFM stream: %w", err)
		}
		return nil
	},
}

// qdMfmSyncCmd realigns a capture on a sync word.
var qdMfmSyncCmd = &cobra.Command{
	Use:   "sync [input_file] [output_file]",
	Short: "Align a capture on a sync word",
	Long: `Search the N-th MFM sync word in a capture already in MFM bit order
(see 'lut invert') and write the capture shifted to start on it.

Example:
  s10tools qd mfm sync --block 2 capture.mfm aligned.mfm`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		block, err := cmd.Flags().GetInt("block")
		if err != nil {
			return fmt.Errorf("error getting block flag: %w", err)
		}

		if err := pkg.NewQDProcessor().Sync(args[0], args[1], block); err != nil {
			return fmt.Errorf("failed to sync MFM stream: %w", err)
		}
		return nil
	},
}

var qdLutCmd = &cobra.Command{
	Use:   "lut",
	Short: "Bit order table",
}

// qdLutInvertCmd maps every byte of a file through the bit order table.
var qdLutInvertCmd = &cobra.Command{
	Use:   "invert [input_file] [output_file]",
	Short: "Map every byte through the bit order table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		if err := pkg.NewQDProcessor().Invert(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to invert bit order: %w", err)
		}
		return nil
	},
}

var qdCrcCmd = &cobra.Command{
	Use:   "crc",
	Short: "CRC-16 check and table dump",
}

// qdCrcCheckCmd checks a file that ends in its own CRC.
var qdCrcCheckCmd = &cobra.Command{
	Use:   "check [input_file]",
	Short: "Check the CRC-16 of a file",
	Long: `Compute the CRC-16 (polynomial 0x8005) over a whole file. A file that
ends with its own CRC, high byte first, gives zero.

Example:
  s10tools qd crc check --init 0x0000 block.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		initText, err := cmd.Flags().GetString("init")
		if err != nil {
			return fmt.Errorf("error getting init flag: %w", err)
		}
		initValue, err := common.ParseUint16(initText)
		if err != nil {
			return err
		}

		crc, err := pkg.NewQDProcessor().CheckCRC(args[0], initValue)
		fmt.Printf("CRC: 0x%04X\n", crc)
		return err
	},
}

// qdCrcTableCmd prints a CRC lookup table.
var qdCrcTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print a CRC-16 lookup table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}
		polyText, err := cmd.Flags().GetString("poly")
		if err != nil {
			return fmt.Errorf("error getting poly flag: %w", err)
		}
		poly, err := common.ParseUint16(polyText)
		if err != nil {
			return err
		}
		bits, err := cmd.Flags().GetUint("bits")
		if err != nil {
			return fmt.Errorf("error getting bits flag: %w", err)
		}

		table, err := qd.BuildCRCTable(poly, bits)
		if err != nil {
			return err
		}
		for i := range table.High {
			fmt.Printf("%3d  %02X %02X\n", i, table.High[i], table.Low[i])
		}
		return nil
	},
}

// qdBlocksCmd decodes a SysEx dump and writes its QuickDisk blocks.
var qdBlocksCmd = &cobra.Command{
	Use:   "blocks [input_file] [output_directory]",
	Short: "Build QuickDisk blocks from a SysEx dump",
	Long: `Decode a SysEx dump and write the format, parameter and wave blocks of
every bank covered by its sampling structure as bank-N_block-M.bin.

Example:
  s10tools qd blocks dump.syx ./output/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()

		processor := pkg.NewSyxProcessor()
		sample, err := processor.Decode(file)
		if sample == nil {
			return fmt.Errorf("failed to decode SysEx dump: %w", err)
		}
		if err != nil {
			common.LogWarn("%v", err)
		}
		return processor.ExportBlocks(sample, args[1])
	},
}

// qdGeometryCmd prints the track layout.
var qdGeometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Show the QuickDisk track layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := cmd.Flags().GetUint32("rate")
		if err != nil {
			return fmt.Errorf("error getting rate flag: %w", err)
		}
		at, err := cmd.Flags().GetUint32("at")
		if err != nil {
			return fmt.Errorf("error getting at flag: %w", err)
		}

		geometry := qd.DefaultTrackGeometry()
		fmt.Printf("Lead-in:      %d bytes\n", geometry.LeadIn)
		fmt.Printf("Window:       %d bytes (ends at %d)\n", geometry.Window, geometry.WindowEnd())
		fmt.Printf("Track:        %d bytes\n", geometry.Total)
		fmt.Printf("Image blocks: %d x %d bytes\n", geometry.ImageBlocks, qd.BlockSize)
		if rate > 0 {
			fmt.Printf("Bit offset at %d ms: %d\n", at, qd.TimeToBitOffset(rate, at))
		}
		return nil
	},
}

// init initializes the qd command tree with appropriate flags.
func init() {
	rootCmd.AddCommand(qdCmd)

	qdCmd.AddCommand(qdMfmCmd, qdLutCmd, qdCrcCmd, qdBlocksCmd, qdGeometryCmd)
	qdMfmCmd.AddCommand(qdMfmEncodeCmd, qdMfmDecodeCmd, qdMfmSyncCmd)
	qdLutCmd.AddCommand(qdLutInvertCmd)
	qdCrcCmd.AddCommand(qdCrcCheckCmd, qdCrcTableCmd)

	for _, c := range []*cobra.Command{
		qdMfmEncodeCmd, qdMfmDecodeCmd, qdMfmSyncCmd,
		qdLutInvertCmd, qdCrcCheckCmd, qdCrcTableCmd, qdBlocksCmd,
	} {
		verboseFlag(c)
	}

	qdMfmDecodeCmd.Flags().Int("block", 0, "Align on this sync word first (1-based, 0 = no alignment)")
	qdMfmDecodeCmd.Flags().Int("cursor", 0, "First MFM bit to decode")
	qdMfmSyncCmd.Flags().Int("block", 1, "Sync word to align on (1-based)")

	qdCrcCheckCmd.Flags().String("init", "0x0000", "Initial CRC register value")
	qdCrcTableCmd.Flags().String("poly", "0x8005", "CRC-16 polynomial")
	qdCrcTableCmd.Flags().Uint("bits", qd.CRCNibbleBits, "Table index width in bits (1-8)")

	qdGeometryCmd.Flags().Uint32("rate", 0, "MFM cells per second for --at")
	qdGeometryCmd.Flags().Uint32("at", qd.LeadInMS, "Time in milliseconds to convert to a bit offset")
}
