package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/deskkeys/internal/analytics"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// StatsOptions contains options for the usage report
type StatsOptions struct {
	Limit int  // rows to print, 0 for all
	Clear bool // wipe recorded usage instead of reporting
}

// Stats prints how often each shortcut fired
func Stats(w io.Writer, opts StatsOptions) error {
	mgr, err := analytics.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if opts.Clear {
		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Usage history cleared")
		return nil
	}

	stats, err := mgr.GetStatsPerCombo()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No shortcut usage recorded yet")
		return nil
	}
	if opts.Limit > 0 && len(stats) > opts.Limit {
		stats = stats[:opts.Limit]
	}

	fmt.Fprintln(w, renderStats(stats))
	return nil
}

func renderStats(stats []analytics.Stats) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Shortcut", "Action", "Fires", "Prevented", "Sources", "Last used").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, s := range stats {
		t.Row(
			shortcut.FormatCombo(s.Combo),
			s.Action,
			strconv.Itoa(s.TotalFires),
			strconv.Itoa(s.PreventedCount),
			formatSources(s.Sources),
			s.LastUsed.Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}

// formatSources renders per-source counts as "bridge:1 tui:3"
func formatSources(sources map[string]int) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%d", name, sources[name]))
	}
	return strings.Join(parts, " ")
}
