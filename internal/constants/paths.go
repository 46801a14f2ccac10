package constants

// Log file names and rotation policy.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.quill/logs/quill.log
	CLILogFileName = "quill.log"

	// LogMaxSizeMB is the maximum size of the log file before rotation, in megabytes.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files, in days.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)
