// Package table builds bordered lipgloss tables in the joystick-reader theme.
package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/joystick/tui/theme"
)

// Options provides additional configuration for the table
type Options struct {
	Bordered      bool
	AlternateRows bool
	HeaderStyle   lipgloss.Style
	RowStyle      lipgloss.Style
	Theme         *theme.Theme
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return optionsFor(theme.DefaultTheme)
}

func optionsFor(t *theme.Theme) Options {
	return Options{
		Bordered:      true,
		AlternateRows: t.UseAlternatingRows(),
		HeaderStyle:   t.TableHeader,
		RowStyle:      t.TableRow,
		Theme:         t,
	}
}

// Builder provides a fluent interface for creating styled tables
type Builder struct {
	table   *ltable.Table
	options Options
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{
		table:   ltable.New(),
		options: DefaultOptions(),
	}
}

// WithTheme sets the theme
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.options = optionsFor(t)
	return b
}

// WithHeaders sets the table headers
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows appends rows to the table
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// Build creates the styled table
func (b *Builder) Build() *ltable.Table {
	opts := b.options
	if opts.Bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(opts.Theme.Colors.Border))
	} else {
		b.table = b.table.Border(lipgloss.HiddenBorder())
	}

	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return opts.HeaderStyle
		}
		style := opts.RowStyle
		if opts.AlternateRows && row%2 == 1 {
			style = style.Background(opts.Theme.Colors.VerySubtleBackground)
		}
		return style
	})

	return b.table
}
