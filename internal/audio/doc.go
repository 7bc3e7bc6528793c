// Package audio plays short feedback cues.
//
// A cue is a fixed Sequence of tones at offsets, handed to a Scheduler so
// nothing blocks the caller and overlapping cues never cancel each other.
// Tones are rendered by a Backend created lazily on first use; all backend
// failures are logged as warnings and otherwise ignored.
package audio
