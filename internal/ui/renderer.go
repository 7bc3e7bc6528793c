package ui

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/gamifier"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/microcosm-cc/bluemonday"
)

// strict strips markup from server-provided text before it reaches the
// terminal.
var strict = bluemonday.StrictPolicy()

// clean removes tags and control sequences, keeping plain text.
func clean(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Map(func(r rune) rune {
		if r == '\t' || (r >= 0x20 && r != 0x7f && (r < 0x80 || r > 0x9f)) {
			return r
		}
		return -1
	}, s)
}

func join(parts ...string) string {
	return clean(strings.TrimSpace(strings.Join(parts, " ")))
}

// Renderer draws views in the current theme's colors.
type Renderer struct {
	lg *lipgloss.Renderer

	mu      sync.RWMutex
	styles  styles
	title   string
	name    theme.Name
	effects bool
	now     func() time.Time

	unsubscribe func()
}

type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	panel     lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	border    lipgloss.Style
	tableEdge lipgloss.Border
	good      lipgloss.Style
	warn      lipgloss.Style
	bad       lipgloss.Style
}

// NewRenderer renders for out and follows svc. A nil svc pins the starfleet
// theme.
func NewRenderer(out io.Writer, svc *theme.Service) *Renderer {
	r := &Renderer{
		lg:  lipgloss.NewRenderer(out),
		now: time.Now,
	}
	if svc == nil {
		cfg, _ := theme.Builtin(theme.Starfleet)
		r.Apply(theme.Change{Theme: cfg, Title: cfg.AppName, Variables: theme.Variables(cfg.Name)})
		return r
	}
	r.unsubscribe = svc.Subscribe(r.Apply)
	return r
}

// Close stops following the theme service.
func (r *Renderer) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// SetClock overrides the time source for the stardate.
func (r *Renderer) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Apply rebuilds styles from a theme change.
func (r *Renderer) Apply(change theme.Change) {
	vars := change.Variables
	primary := lipgloss.Color(vars[theme.VarPrimary])
	secondary := lipgloss.Color(vars[theme.VarSecondary])
	text := lipgloss.Color(vars[theme.VarTextPrimary])
	muted := lipgloss.Color(vars[theme.VarTextSecondary])
	border := lipgloss.Color(vars[theme.VarBorder])

	effects := change.Theme.EnableEffects
	edge := lipgloss.RoundedBorder()
	frame := border
	if effects {
		// LCARS frame
		edge = lipgloss.ThickBorder()
		frame = primary
	}

	s := styles{
		title:     r.lg.NewStyle().Bold(true).Foreground(primary),
		subtle:    r.lg.NewStyle().Foreground(muted),
		label:     r.lg.NewStyle().Foreground(secondary),
		value:     r.lg.NewStyle().Bold(true).Foreground(text),
		panel:     r.lg.NewStyle().Border(edge).BorderForeground(frame).Padding(0, 1),
		header:    r.lg.NewStyle().Bold(true).Foreground(primary).Padding(0, 1),
		cell:      r.lg.NewStyle().Foreground(text).Padding(0, 1),
		border:    r.lg.NewStyle().Foreground(frame),
		tableEdge: edge,
		good:      r.lg.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		warn:      r.lg.NewStyle().Foreground(lipgloss.Color("#eab308")),
		bad:       r.lg.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
	if effects {
		s.title = s.title.Reverse(true).Padding(0, 1)
	}

	r.mu.Lock()
	r.styles = s
	r.title = change.Title
	r.name = change.Theme.Name
	r.effects = effects
	r.mu.Unlock()
}

func (r *Renderer) snapshot() (styles, string, bool, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styles, r.title, r.effects, r.now()
}

// ThemeName returns the theme the styles were built from.
func (r *Renderer) ThemeName() theme.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name
}

// Header renders the application title with the stardate.
func (r *Renderer) Header() string {
	s, title, effects, now := r.snapshot()
	date := "STARDATE " + gamifier.Stardate(now)
	if !effects {
		date = now.Format("2006-01-02")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, s.title.Render(title), "  ", s.subtle.Render(date))
}

// Status renders the connection badge.
func (r *Renderer) Status(status gamifier.ConnectionStatus) string {
	s, _, _, _ := r.snapshot()
	badge := strings.ToUpper(string(status))
	switch status {
	case gamifier.ConnectionConnected:
		return s.good.Render("● " + badge)
	case gamifier.ConnectionDisconnected:
		return s.bad.Render("● " + badge)
	default:
		return s.warn.Render("○ " + badge)
	}
}

// Loading renders the loading line, or nothing when idle.
func (r *Renderer) Loading(loading bool) string {
	if !loading {
		return ""
	}
	s, _, effects, _ := r.snapshot()
	if effects {
		return s.warn.Render("ACCESSING LCARS DATABASE...")
	}
	return s.subtle.Render("Loading...")
}

// WatchLoading writes the loading line to w each time state starts loading.
// The returned func stops watching.
func (r *Renderer) WatchLoading(w io.Writer, state *api.LoadingState) func() {
	return state.Subscribe(func(loading bool) {
		if line := r.Loading(loading); line != "" {
			fmt.Fprintln(w, line)
		}
	})
}

// Dashboard renders the dashboard screen.
func (r *Renderer) Dashboard(view *gamifier.DashboardView) string {
	if view == nil {
		return ""
	}
	s, _, _, _ := r.snapshot()
	u := view.User

	stats := []string{
		r.field(s, "Officer", join(u.Name, u.Surname)),
		r.field(s, "Rank", join(u.CurrentRankInsignia, u.CurrentRank)),
		r.field(s, "Points", strconv.Itoa(u.TotalPoints)),
	}
	if u.NextRank != "" {
		stats = append(stats, r.field(s, "Next rank", fmt.Sprintf("%s (%d to go)", clean(u.NextRank), u.PointsToNextRank)))
	}

	sections := []string{
		s.panel.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)),
		r.Missions(view.ActiveMissions),
		r.Leaderboard("Top officers", view.Leaderboard),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Missions renders mission progress rows.
func (r *Renderer) Missions(missions []gamifier.MissionProgressSummary) string {
	s, _, _, _ := r.snapshot()
	if len(missions) == 0 {
		return s.subtle.Render("No active missions")
	}
	rows := make([][]string, len(missions))
	for i, m := range missions {
		rows[i] = []string{
			join(m.Badge, m.MissionName),
			fmt.Sprintf("%d/%d", m.CompletedActions, m.TotalActions),
			progressBar(m.Percent(), 10),
		}
	}
	return r.table(s, []string{"Mission", "Actions", "Progress"}, rows)
}

// Leaderboard renders a leaderboard table under title.
func (r *Renderer) Leaderboard(title string, entries []gamifier.LeaderboardEntry) string {
	s, _, _, _ := r.snapshot()
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, s.label.Render(title), s.subtle.Render("No entries"))
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(e.Position),
			join(e.Name, e.Surname),
			join(e.Insignia, e.CurrentRank),
			strconv.Itoa(e.TotalPoints),
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render(title),
		r.table(s, []string{"#", "Officer", "Rank", "Points"}, rows),
	)
}

// ImportResult summarizes a bulk import.
func (r *Renderer) ImportResult(res gamifier.ImportResult) string {
	s, _, _, _ := r.snapshot()
	lines := []string{
		r.field(s, "Records", strconv.Itoa(res.TotalRecords)),
		r.field(s, "Imported", s.good.Render(strconv.Itoa(res.SuccessfulImports))),
		r.field(s, "Failed", s.bad.Render(strconv.Itoa(res.FailedImports))),
	}
	for _, e := range res.Errors {
		lines = append(lines, s.bad.Render("  "+clean(e)))
	}
	return s.panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Error renders a failed call, including the HTTP status when known.
func (r *Renderer) Error(err error) string {
	s, _, _, _ := r.snapshot()
	var statusErr *api.HTTPStatusError
	if errors.As(err, &statusErr) {
		return s.bad.Render(fmt.Sprintf("Error %d: %s", statusErr.Status, clean(statusErr.Message())))
	}
	return s.bad.Render("Error: " + clean(err.Error()))
}

func (r *Renderer) field(s styles, label, value string) string {
	return s.label.Render(label+": ") + s.value.Render(value)
}

func (r *Renderer) table(s styles, headers []string, rows [][]string) string {
	t := table.New().
		Border(s.tableEdge).
		BorderStyle(s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
	return t.Render()
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3d%%", percent)
}
