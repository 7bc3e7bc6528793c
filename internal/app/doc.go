// Package app is the composition root of the gamifier client.
//
// New builds the storage, HTTP client, theme, audio, console and renderer
// from a config.Config, sharing one logger and one metrics registry between
// them. Close flushes whatever the session produced.
//
// Example Usage:
//
//	a, err := app.New(config.LoadOrDefault(), app.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//	user, err := a.Console.Boot(ctx)
package app
