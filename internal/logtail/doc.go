// Package logtail reads the end of marquee's log file for the in-app log
// overlay.
//
// Read keeps a ring buffer of maxLines entries, so only the tail is held in
// memory regardless of file size. Missing files are not an error; the
// overlay simply shows nothing.
//
// The log file holds zerolog JSON records. FormatLine and FormatLines turn
// them back into compact console lines through zerolog's ConsoleWriter:
//
//	{"level":"info","widget":"hero","time":"2025-10-08T21:01:05Z","message":"widget started"}
//
// becomes
//
//	21:01:05 INF widget started widget=hero
//
// Anything that is not a JSON record passes through untouched.
package logtail
