// Package ui renders gamifier views for the terminal. Styles are rebuilt
// from the theme's color variables whenever the theme changes.
package ui
