package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/phanxgames/chanmix"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newTable creates a table writing to w with the given columns right-aligned.
func newTable(w io.Writer, title string, rightAligned ...int) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	return t
}

// renderLayout prints an animator's channel layout.
func renderLayout(w io.Writer, title string, infos []chanmix.TrackInfo) {
	t := newTable(w, title, 1, 5, 6, 7)
	t.AppendHeader(table.Row{"Track", "Channel", "Role", "Animation", "Time", "Weight", "Speed"})
	for _, info := range infos {
		role := info.Role.String()
		if info.Role == chanmix.RoleBackground {
			role = fmt.Sprintf("%s %d", role, info.Slot)
		}
		if !info.Playing {
			t.AppendRow(table.Row{info.Index, info.Channel, role, "-", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			info.Index, info.Channel, role, info.Animation,
			fmt.Sprintf("%.3f", info.Time),
			fmt.Sprintf("%.3f", info.Alpha),
			fmt.Sprintf("%.2f", info.Speed),
		})
	}
	t.Render()
}

// renderState prints a bare track state, as written by a timeline mixer.
func renderState(w io.Writer, title string, state *chanmix.TrackState) {
	t := newTable(w, title, 1, 4, 5, 6)
	t.AppendHeader(table.Row{"Track", "Animation", "Loop", "Time", "Weight", "Speed"})
	for i := range state.Len() {
		e := state.Track(i)
		if !e.Playing() {
			t.AppendRow(table.Row{i, "-", "", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			i, e.Animation.Name, e.Loop,
			fmt.Sprintf("%.3f", e.AnimationTime()),
			fmt.Sprintf("%.3f", e.Alpha),
			fmt.Sprintf("%.2f", e.TimeScale),
		})
	}
	t.Render()
}
