package common

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// SetLogFile tees log output to a rotating file in addition to stderr.
// The returned closer must be closed once the command finishes.
func SetLogFile(path string) (io.Closer, error) {
	if path == "" {
		return nil, fmt.Errorf("%s: empty path", ErrFailedToOpenLogFile)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	// lumberjack opens lazily; a zero-length write surfaces an unwritable path now.
	if _, err := rotator.Write(nil); err != nil {
		return nil, FormatError(ErrFailedToOpenLogFile, err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator, nil
}

// Error messages
const (
	ErrFailedToOpenWorkbook     = "failed to open workbook"
	ErrFailedToReadSheet        = "failed to read sheet"
	ErrFailedToLoadConfig       = "failed to load configuration"
	ErrFailedToParseConfig      = "failed to parse configuration"
	ErrInvalidConfig            = "invalid configuration"
	ErrFailedToCreateOutputDir  = "failed to create output directory"
	ErrFailedToWriteScript      = "failed to write script file"
	ErrFailedToWriteReport      = "failed to write conversion report"
	ErrFailedToEncodeYAML       = "failed to encode YAML"
	ErrFailedToOpenLogFile      = "failed to open log file"
	ErrFailedToLocateWorkbook   = "failed to locate workbook"
	ErrFailedToResolveOutputDir = "failed to resolve output directory"
)

// Info messages
const (
	InfoWorkbookFound     = "Workbook found: %s"
	InfoProcessingSheet   = "Processing sheet: %s"
	InfoCharactersLoaded  = "Loaded %d characters from sheet %s"
	InfoMergeCompleted    = "Merge completed: %d sheets inlined in %d passes"
	InfoScriptExported    = "Exported (%s): %s"
	InfoConversionSummary = "Converted %d sheets into %d scripts (%d dropped rows, %d failed writes)"
	InfoReportExported    = "Conversion report written to: %s"
	InfoNoScriptsToWrite  = "No scripts were produced from this workbook"
)

// Debug messages
const (
	DebugRowClassified   = "Row %d (sheet %s): %s"
	DebugSheetMerged     = "Inlined sheet %s into %s"
	DebugChoiceUnmerged  = "Choice target %s in %s left as a literal jump"
	DebugMergePass       = "Merge pass %d: %d merges"
	DebugCharacterMapped = "Character %q -> %s (portrait: %t)"
	DebugConfigLoaded    = "Configuration loaded from %s"
	DebugSheetCompiled   = "Sheet %s compiled into %d lines"
	DebugReservedSheet   = "Skipping reserved sheet: %s"
	DebugGraphBuilt      = "Script graph built from %d sheets"
)

// Warning messages
const (
	WarnInvalidChoice         = "Row %d (sheet %s): dialogue %q is present but choice cell (raw value: %q) is empty after trimming. Row skipped."
	WarnUnknownSpeaker        = "Row %d (sheet %s): no character id found for speaker %q (dialogue: %q). Check the %s sheet."
	WarnMissingDialogueColumn = "Sheet %s is missing the core %q column, skipping this sheet."
	WarnSheetUnreadable       = "Cannot read sheet %s: %v"
	WarnNoCharacterSheet      = "Sheet %q not found, character ids cannot be resolved."
	WarnCharacterColumns      = "Sheet %q is missing the %q or %q column."
	WarnEmptyCharacterTable   = "Sheet %q was loaded but no character mapping could be built (empty or malformed)."
	WarnScriptWriteFailed     = "Could not write script %s: %v"
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
