// Package key names the non-character keys a host can report.
//
// Character input never travels as a Key: committed text arrives as runes.
// Keys cover navigation and editing triggers, and are spelled in event
// scripts by their case-insensitive names ("left", "Right", "bs").
package key
