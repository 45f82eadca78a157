package logging

// LogEntry represents a structured log record.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Simulation fields
	RunID      string // Identifier of the simulation run, if any
	Generation int    // Generation index the entry belongs to, 0 if none

	// General structured data
	Fields map[string]interface{}
}
