package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToReadInput        = "failed to read input"
	ErrFailedToDecodeSysex      = "failed to decode SysEx data"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToCreateOutputDir  = "failed to create output directory"
	ErrFailedToEncodeYAML       = "failed to encode YAML"
	ErrFailedToWriteWave        = "failed to write WAV file"
	ErrFailedToWriteBlock       = "failed to write block file"
	ErrEmptyInput               = "input is empty"
	ErrSyncWordNotFound         = "sync word not found"
	ErrCRCMismatch              = "CRC mismatch"
	ErrInvalidBitLength         = "invalid bit length"
	ErrSampleMemoryExhausted    = "sample position outside S-10 memory boundary"
	ErrUnsupportedCRCTableWidth = "unsupported CRC table width"
)

// Info messages
const (
	InfoSysexDecoded   = "Decoded %d SysEx frames (%d accepted, %d rejected)"
	InfoFinalPosition  = "Final sample position: %d"
	InfoYAMLExported   = "Exported sample description to YAML: %s"
	InfoWaveExported   = "Exported waveform %s (%d samples at %d Hz) to: %s"
	InfoBlocksExported = "Exported %d blocks for %d banks to: %s"
	InfoStreamWritten  = "Wrote %d bytes to: %s"
	InfoCRCValid       = "CRC check successful"
	InfoProcessing     = "Processing %s"
)

// Debug messages
const (
	DebugSysexStart        = "System Exclusive start at offset %d"
	DebugSysexStop         = "System Exclusive stop at offset %d (payload bytes: %d)"
	DebugVendorFound       = "Roland ID found"
	DebugChannel           = "MIDI basic channel: %d"
	DebugModelFound        = "S-10 found"
	DebugCommand           = "Command-ID: %s"
	DebugCommandRejected   = "Unrecognized Command-ID 0x%02X"
	DebugAddress           = "Address: %02X %02X %02X"
	DebugWaveParamBlock    = "Wave parameter of block-%d"
	DebugPerformanceParam  = "Performance parameter"
	DebugDestinationBank   = "Destination bank: %d"
	DebugToneName          = "Tone name: '%s'"
	DebugSamplingStructure = "Sampling structure: %d - %s"
	DebugSampleRate        = "Sampling rate: %d Hz"
	DebugLoopMode          = "Loop mode: %s"
	DebugScanMode          = "Scan mode: %s"
	DebugRecKey            = "Rec key number: %d"
	DebugAddresses         = "Start %d, manual loop %d, manual end %d, auto loop %d, auto end %d"
	DebugWaveDataBank      = "Wave data of bank-%d, sample position 0x%05X"
	DebugSecondBlock       = "Second wave parameter block in frame, offset 0x%02X"
	DebugCRCTable          = "CRC table (poly 0x%04X): high=% X low=% X"
	DebugBlockCRC          = "Block of %d bytes, CRC 0x%04X"
	DebugMFMEncoded        = "MFM encoded %d bits, cursor %d -> %d"
	DebugMFMDecoded        = "MFM decoded %d bits, cursor %d -> %d"
	DebugSyncFound         = "Sync block %d found at bit offset %d"
	DebugRealigned         = "Realigned %d bytes by %d bits"
	DebugWaveformBuilt     = "Waveform %s spans banks %v"
)

// Warning messages
const (
	WarnWrongVendor         = "Wrong manufacturer ID 0x%02X at offset %d, frame ignored"
	WarnWrongChannel        = "Wrong MIDI basic channel 0x%02X at offset %d, frame ignored"
	WarnWrongModel          = "Wrong Model-ID 0x%02X at offset %d, frame ignored"
	WarnStraySymbol         = "Stray symbol at offset %d (next is System Exclusive stop), frame ignored"
	WarnBadBank             = "Destination bank %d out of range at offset %d, frame ignored"
	WarnBadStructure        = "Sampling structure %d out of range at offset %d, ignored"
	WarnBadLoopMode         = "Loop mode bits 0x%02X at offset %d not recognized, ignored"
	WarnBadScanMode         = "Scan mode bits 0x%02X at offset %d not recognized, ignored"
	WarnMemoryExhausted     = "Sample position 0x%05X outside S-10 memory boundary, halting"
	WarnTruncatedFrame      = "Frame at offset %d ends before its address field"
	WarnNoWaveforms         = "No sampling structure decoded, exporting bank A only"
	WarnCRCMismatch         = "CRC check failed: 0x%04X"
	WarnSyncBlockIncomplete = "Only %d of %d sync blocks found"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
