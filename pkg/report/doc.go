// Package report turns the free-form text printed by Android diagnostic
// commands into typed records.
//
// The package has two layers. Line grammars (ParseListingLine,
// ParseCPUStatLine, ParsePSLine, ...) recognize a single line and return
// the record plus a boolean; a line that does not match is never an error.
// Report parsers (ParseDirectoryListing, ParseMemInfo, ParseBattery, ...)
// fold a grammar over a whole command output.
//
// Report parsers tolerate malformed lines, extra whitespace and unknown keys.
// A parser returns an error only when the report's defining field is absent
// (MemTotal for meminfo, level for a battery dump); such errors carry the
// errors.ErrCodeMissingField code. Optional attributes that cannot be found
// are left nil.
//
// All functions are pure and safe for concurrent use.
package report
