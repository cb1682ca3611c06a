package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"ewaste-admin-console/internal/console"
)

// Console is what the REPL drives.
type Console interface {
	Click(ctx context.Context, panel string, b console.Button) error
	Refresh(ctx context.Context, panel string) error
	SelectTab(tab string) error
	ActiveTab() string
	Rows(panel string) ([]console.Row, error)
	Logout()
}

var verbs = map[string]console.Action{
	"promote": console.ActionPromote,
	"delete":  console.ActionDelete,
	"next":    console.ActionUpdate,
	"update":  console.ActionUpdate,
}

// Run reads commands until quit, logout or end of input.
func (t *Terminal) Run(ctx context.Context, c Console) error {
	t.printHelp()
	for {
		fmt.Fprintf(t.out, "%s> ", c.ActiveTab())
		line, err := t.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if errors.Is(err, io.EOF) {
				return nil
			}
			continue
		}

		if stop := t.exec(ctx, c, fields); stop {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func (t *Terminal) exec(ctx context.Context, c Console, fields []string) bool {
	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "quit", "exit":
		return true
	case "logout":
		c.Logout()
		return true
	case "help", "?":
		t.printHelp()
	case console.PanelUsers, console.PanelOrders:
		t.report(c.SelectTab(cmd))
	case "tab":
		if len(fields) < 2 {
			t.errorf("usage: tab <users|orders>")
			return false
		}
		t.report(c.SelectTab(strings.ToLower(fields[1])))
	case "refresh":
		err := c.Refresh(ctx, c.ActiveTab())
		if err != nil && !errors.Is(err, console.ErrSuperseded) {
			t.errorf("%v", err)
		}
	default:
		action, ok := verbs[cmd]
		if !ok {
			t.errorf("unknown command %q, type help", cmd)
			return false
		}
		t.click(ctx, c, action, fields[1:])
	}
	return false
}

func (t *Terminal) click(ctx context.Context, c Console, action console.Action, args []string) {
	if len(args) != 1 {
		t.errorf("usage: %s <row>", action)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		t.errorf("row must be a positive number")
		return
	}

	panel := c.ActiveTab()
	rows, err := c.Rows(panel)
	if err != nil {
		t.errorf("%v", err)
		return
	}
	if n > len(rows) {
		t.errorf("no row %d on %s", n, panel)
		return
	}

	for _, b := range rows[n-1].Buttons {
		if b.Action != action {
			continue
		}
		// Dispatch already told the operator what went wrong.
		if err := c.Click(ctx, panel, b); errors.Is(err, console.ErrActionInFlight) {
			t.errorf("%v", err)
		}
		return
	}
	t.errorf("%s has no %s action", panel, action)
}

func (t *Terminal) report(err error) {
	if err != nil {
		t.errorf("%v", err)
	}
}

func (t *Terminal) errorf(format string, args ...any) {
	fmt.Fprintln(t.out, color.RedString(format, args...))
}

func (t *Terminal) printHelp() {
	yellow := color.New(color.FgYellow)
	fmt.Fprintln(t.out)
	yellow.Fprintln(t.out, "Commands:")
	fmt.Fprintln(t.out, "  users | orders        Switch tab")
	fmt.Fprintln(t.out, "  refresh               Reload the current tab")
	fmt.Fprintln(t.out, "  promote <row>         Promote a user to admin")
	fmt.Fprintln(t.out, "  next <row>            Mark an order completed")
	fmt.Fprintln(t.out, "  delete <row>          Delete a user or an order")
	fmt.Fprintln(t.out, "  logout                Sign out")
	fmt.Fprintln(t.out, "  quit                  Leave the console")
}
