// Package script reads, writes, and replays host event scripts.
//
// A script is a YAML document holding an optional session id and an ordered
// list of host events, one kind per entry:
//
//	session: 2b7d5c1e-...
//	events:
//	  - char: "a"
//	  - key: left
//	  - enabled: true
//	  - preedit: {text: "今日", start: 0, end: 2}
//	  - commit: "今日"
//	  - disabled: true
//	  - focus: false
//	  - close: true
//
// Terminals cannot deliver input-method composition, so scripts are how
// preedit sessions reach the textarea. The Player replays a script onto an
// event channel; the Recorder captures a live session for later replay.
package script
