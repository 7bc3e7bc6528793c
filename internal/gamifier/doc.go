// Package gamifier is the typed client for the Starfleet Gamifier backend
// and the glue the feature views share.
//
// Client maps every backend endpoint onto an api.Client call. Console
// combines it with the audio and theme services: it loads data, keeps the
// connection status current and plays the feedback cues.
package gamifier
