// Package terminal renders the admin console on a text terminal and reads
// operator commands from it.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"ewaste-admin-console/internal/console"
)

type panelState struct {
	rows        []console.Row
	placeholder string
}

// Terminal implements console.View, console.Prompter and console.Navigator.
// Only the active panel is drawn; the other is kept and drawn when its tab
// is selected.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	mu        sync.Mutex
	panels    map[string]*panelState
	active    string
	denied    bool
	toLogin   bool
	loginHint string
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:        bufio.NewReader(in),
		out:       out,
		panels:    make(map[string]*panelState),
		loginHint: "admin-console login <token>",
	}
}

func (t *Terminal) ShowRows(panel string, rows []console.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panels[panel] = &panelState{rows: rows}
	if panel == t.active {
		t.drawLocked(panel)
	}
}

func (t *Terminal) ShowPlaceholder(panel, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panels[panel] = &panelState{placeholder: text}
	if panel == t.active {
		t.drawLocked(panel)
	}
}

func (t *Terminal) Deny(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.denied = true
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, color.New(color.FgRed, color.Bold).Sprint("  "+message))
	fmt.Fprintln(t.out)
}

func (t *Terminal) ActivateTab(tab string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = tab
	t.drawLocked(tab)
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (t *Terminal) Confirm(message string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", color.New(color.FgYellow).Sprint(message))
	line, _ := t.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (t *Terminal) Alert(message string) {
	c := color.New(color.FgGreen)
	if message == "Failed" || strings.HasPrefix(message, "Missing") {
		c = color.New(color.FgRed)
	}
	fmt.Fprintln(t.out, c.Sprint("» "+message))
}

func (t *Terminal) ToLogin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toLogin = true
	fmt.Fprintf(t.out, "Not signed in. Run %s with a token from the marketplace login page.\n", t.loginHint)
}

// RedirectedToLogin reports whether the console asked to leave for login.
func (t *Terminal) RedirectedToLogin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.toLogin
}

func (t *Terminal) Denied() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.denied
}

// Redraw prints the active panel again.
func (t *Terminal) Redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drawLocked(t.active)
}

func (t *Terminal) drawLocked(panel string) {
	heading := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(t.out)
	heading.Fprintf(t.out, "  %s\n", strings.ToUpper(panel))

	st, ok := t.panels[panel]
	if !ok {
		fmt.Fprintln(t.out, "  Loading...")
		return
	}
	if st.placeholder != "" {
		fmt.Fprintf(t.out, "  %s\n", st.placeholder)
		return
	}

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	for i, r := range st.rows {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n", i+1, r.Title, r.Subtitle, r.Details, r.Status, buttons(r.Buttons))
	}
	w.Flush()
}

func buttons(bs []console.Button) string {
	labels := make([]string, 0, len(bs))
	for _, b := range bs {
		label := "[" + b.Label + "]"
		switch b.Style {
		case "danger":
			label = color.RedString(label)
		case "primary":
			label = color.BlueString(label)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " ")
}
