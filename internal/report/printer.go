package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
)

// Printer writes styled reports. Styles degrade to plain text when w is not
// a terminal.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	errorS  lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		good:    r.NewStyle().Foreground(lipgloss.Color("#228B22")).Bold(true),
		errorS:  r.NewStyle().Foreground(lipgloss.Color("#CC3333")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FF8800")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("#4682B4")),
	}
}

// Definition prints the mixin order, dependencies and introductions.
func (p *Printer) Definition(def *definition.TargetClassDefinition) {
	s := Summarize(def)

	p.printf("%s %s\n", p.title.Render(s.Target), p.muted.Render(fmt.Sprintf("(%d mixins)", len(s.Mixins))))

	for _, m := range s.Mixins {
		p.printf("  %d %s %s\n", m.Index, p.title.Render(m.Type), p.muted.Render("["+m.Kind+"]"))

		for _, d := range m.Dependencies {
			p.dependency(d, "      ")
		}

		for _, o := range m.Overrides {
			p.printf("      %s %s\n", p.muted.Render("overrides"), o)
		}
	}

	for _, i := range s.IntroducedInterfaces {
		p.printf("  %s %s %s\n", p.muted.Render("introduces"), i.Type, p.muted.Render("from "+i.From))
	}

	for _, a := range s.IntroducedAttributes {
		p.printf("  %s %s %s\n", p.muted.Render("attribute"), a.Type, p.muted.Render("from "+a.From))
	}

	if len(s.OrderingCycle) > 0 {
		p.printf("  %s %s\n", p.errorS.Render("ordering cycle"), strings.Join(s.OrderingCycle, ", "))
	}
}

func (p *Printer) dependency(d DependencySummary, indent string) {
	impl := p.errorS.Render("unsatisfied")
	if d.Implementer != "" {
		impl = p.good.Render(d.Implementer)
	}

	if len(d.Aggregated) > 0 {
		impl = p.muted.Render("aggregate")
	}

	p.printf("%s%s %s -> %s\n", indent, p.muted.Render(d.Kind), d.Required, impl)

	for _, agg := range d.Aggregated {
		p.dependency(agg, indent+"  ")
	}
}

// Log prints every diagnostic, most severe first, then the summary line.
func (p *Printer) Log(log *diagnostic.Log) {
	groups := []struct {
		label string
		style lipgloss.Style
		items []diagnostic.Diagnostic
	}{
		{"unexpected", p.errorS, log.Unexpected},
		{"error", p.errorS, log.Errors},
		{"warning", p.warning, log.Warnings},
		{"info", p.info, log.Infos},
	}

	for _, g := range groups {
		for _, d := range g.items {
			p.printf("%s %s\n", g.style.Render(fmt.Sprintf("%-10s", g.label)), d.String())
		}
	}

	status := p.good.Render("ok")
	if log.HasErrors() {
		status = p.errorS.Render("invalid")
	}

	p.printf("%s %s\n", status, p.muted.Render(log.Summary()))
}

// Dump writes a deep dump of the definition summary.
func (p *Printer) Dump(def *definition.TargetClassDefinition) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(p.w, Summarize(def))
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}
