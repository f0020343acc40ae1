// Package linear provides a synchronous, line-oriented renderer for scenario
// replays.
package linear

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/pathcache/internal/ui/output"
	"go.trai.ch/pathcache/internal/ui/style"
)

// Renderer implements ports.Renderer. It prints one line per step and per
// delivered event, in the order they happen.
type Renderer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	output *termenv.Output
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a Renderer writing to w. A nil w writes to stdout.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	buf := bufio.NewWriter(w)
	return &Renderer{
		w:      buf,
		output: output.NewWithProfile(buf, output.ANSI),
	}
}

// OnStep prints the step about to run.
func (r *Renderer) OnStep(index int, step domain.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(fmt.Sprintf("[%d]", index+1)).Faint().String()
	r.printf("%s %s\n", prefix, r.paint(DescribeStep(step), style.Iris))
}

// OnChange prints a single-path event.
func (r *Renderer) OnChange(listener string, ev domain.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printf("  %s %s: %s %s %s %s%s\n",
		r.paint(style.Dot, style.Cyan),
		listener,
		ev.Path,
		FormatValue(ev.OldValue),
		style.Arrow,
		FormatValue(ev.NewValue),
		r.suffix(ev.Roots, !ev.Origin.IsZero()),
	)
}

// OnMultiChange prints a batched event as a header followed by one line per
// change.
func (r *Renderer) OnMultiChange(listener string, ev domain.MultiChange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := ev.Prefix.String()
	if len(ev.Prefix) == 0 {
		prefix = "<roots>"
	}
	header := fmt.Sprintf("%d change(s) under %s", len(ev.Changes), prefix)
	if !ev.Origin.IsZero() {
		header += " (loaded)"
	}
	r.printf("  %s %s: %s\n", r.paint(style.Dot, style.Cyan), listener, header)

	for _, c := range ev.Changes {
		r.printf("      %s %s %s %s%s\n",
			c.Path,
			FormatValue(c.OldValue),
			style.Arrow,
			FormatValue(c.NewValue),
			r.suffix(c.Roots, false),
		)
	}
}

// OnReady prints a readiness notification.
func (r *Renderer) OnReady(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printf("  %s %s ready\n", r.paint(style.Check, style.Green), root)
}

// OnValue prints the result of a get step.
func (r *Renderer) OnValue(root string, p domain.Path, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printf("  %s %s.%s = %s\n", r.paint(style.Arrow, style.Iris), root, p, FormatValue(value))
}

// Flush writes buffered lines to the underlying writer.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.w.Flush()
}

// printf must be called with r.mu held.
func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) paint(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(r.output.Color(string(c))).String()
}

func (r *Renderer) suffix(roots []any, loaded bool) string {
	s := " " + r.output.String("roots="+FormatRoots(roots)).Faint().String()
	if loaded {
		s += " (loaded)"
	}
	return s
}

// DescribeStep renders a step in the scenario file's own vocabulary.
func DescribeStep(step domain.Step) string {
	switch step.Kind {
	case domain.StepSet:
		target := step.Object + "." + step.Attribute
		if step.Ref != "" {
			return fmt.Sprintf("set %s = @%s", target, step.Ref)
		}
		return fmt.Sprintf("set %s = %s", target, FormatValue(step.Value))
	case domain.StepAddRoot, domain.StepRemoveRoot:
		return fmt.Sprintf("%s %s", step.Kind, step.Object)
	case domain.StepAddPath, domain.StepRemovePath:
		return fmt.Sprintf("%s %s", step.Kind, step.Path)
	case domain.StepGet:
		return fmt.Sprintf("get %s.%s", step.Object, step.Path)
	default:
		return step.Kind.String()
	}
}

// FormatValue renders a property value. Objects print as @id and strings are
// quoted.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case interface{ ID() string }:
		return "@" + val.ID()
	default:
		return fmt.Sprint(val)
	}
}

// FormatRoots renders a root set in sorted order.
func FormatRoots(roots []any) string {
	names := make([]string, 0, len(roots))
	for _, root := range roots {
		names = append(names, strings.TrimPrefix(FormatValue(root), "@"))
	}
	slices.Sort(names)
	return "[" + strings.Join(names, ",") + "]"
}
