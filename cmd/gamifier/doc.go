// Package main is the entry point for the Starfleet Gamifier terminal client.
//
// The client talks to the gamification backend over HTTP, keeps the auth
// token and theme preference in a local JSON store and plays short tone
// cues as feedback.
//
// Configuration:
//   - Environment variables (GAMIFIER_*, LOG_LEVEL, LOG_DEV)
//   - CLI flags (override env vars)
//   - Built-in defaults
//
// Usage:
//
//	# Save a token and show the dashboard
//	gamifier login eyJhbGciOi...
//	gamifier dashboard --org org-1
//
//	# Monthly leaderboard for June
//	gamifier leaderboard --org org-1 --month 2025-06
//
//	# Switch theme, or play a cue into a raw PCM file
//	gamifier theme corporate
//	gamifier cue startup --audio-out cues.pcm
package main
