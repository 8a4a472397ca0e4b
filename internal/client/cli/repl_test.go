package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }
func (f *fakeExec) Articles(_ context.Context, q []string) error {
	return f.record("articles %s", strings.Join(q, "+"))
}
func (f *fakeExec) Article(_ context.Context, id string) error { return f.record("article %s", id) }
func (f *fakeExec) Threads(context.Context) error              { return f.record("threads") }
func (f *fakeExec) Thread(_ context.Context, id string) error  { return f.record("thread %s", id) }
func (f *fakeExec) NewThread(context.Context) error            { return f.record("newthread") }
func (f *fakeExec) RmThread(_ context.Context, id string) error {
	return f.record("rmthread %s", id)
}
func (f *fakeExec) Comment(_ context.Context, kind, id string) error {
	return f.record("comment %s %s", kind, id)
}
func (f *fakeExec) Uncomment(_ context.Context, kind, id, cid string) error {
	return f.record("uncomment %s %s %s", kind, id, cid)
}
func (f *fakeExec) Categories(context.Context) error { return f.record("categories") }
func (f *fakeExec) Users(context.Context) error      { return f.record("users") }
func (f *fakeExec) Role(_ context.Context, id, role string) error {
	return f.record("role %s %s", id, role)
}
func (f *fakeExec) Stats(context.Context) error { return f.record("stats") }
func (f *fakeExec) BulkDelete(_ context.Context, kind string, ids []string) error {
	return f.record("bulkdelete %s %s", kind, strings.Join(ids, ","))
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"articles",
		"articles zone defense",
		"article 6",
		"comment thread 10",
		"uncomment article 6 12",
		"bulkdelete articles 6 7",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	want := []string{
		"login",
		"articles ",
		"articles zone+defense",
		"article 6",
		"comment thread 10",
		"uncomment article 6 12",
		"bulkdelete articles 6,7",
	}
	if strings.Join(exec.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls mismatch:\n got %v\nwant %v", exec.calls, want)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("article\ncomment thread\nquit\nthreads\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	joined := strings.Join(*out, "\n")
	for _, want := range []string{"Usage: article <id>", "Usage: comment <article|thread> <id>", "Bye!"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("output lacks %q:\n%s", want, joined)
		}
	}
}

func TestRunREPL_HelpDependsOnRole(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true, admin: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help")))

	joined := strings.Join(*out, "\n")
	if !strings.Contains(joined, helpUser) || !strings.Contains(joined, helpAdmin) {
		t.Fatalf("admin help missing:\n%s", joined)
	}
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("threads")))

	if len(exec.calls) != 1 || exec.calls[0] != "threads" {
		t.Fatalf("calls: %v", exec.calls)
	}
}
