// Package theme holds the active display theme.
//
// The selection is persisted as a JSON string under storage.ThemeKey and
// restored by NewService. Presentation code applies themes by subscribing to
// Change events; this package never renders anything itself.
package theme
