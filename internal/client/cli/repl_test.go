package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	authed bool
	calls  []string
}

func (s *stubExec) isAuthenticated() bool              { return s.authed }
func (s *stubExec) Login(ctx context.Context) error    { s.calls = append(s.calls, "login"); return nil }
func (s *stubExec) Register(ctx context.Context) error { s.calls = append(s.calls, "register"); return nil }
func (s *stubExec) Logout(ctx context.Context) error   { s.calls = append(s.calls, "logout"); return nil }
func (s *stubExec) WhoAmI(ctx context.Context) error   { s.calls = append(s.calls, "whoami"); return nil }
func (s *stubExec) Create(ctx context.Context) error   { s.calls = append(s.calls, "create"); return nil }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(args ...any) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			if s, ok := a.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return &lines
}

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	_ = captureOutput(t)
	stub := &stubExec{}

	runScript(t, stub, "login\nregister\nlogout\nwhoami\ncreate\nexit\n")

	require.Equal(t, []string{"login", "register", "logout", "whoami", "create"}, stub.calls)
}

func TestRunREPL_ExitsOnQuitAndEOF(t *testing.T) {
	_ = captureOutput(t)
	stub := &stubExec{}

	runScript(t, stub, "quit\nlogin\n")
	require.Empty(t, stub.calls, "nothing may run after quit")

	runScript(t, stub, "") // immediate EOF
	require.Empty(t, stub.calls)
}

func TestRunREPL_UnknownCommandReported(t *testing.T) {
	out := captureOutput(t)
	stub := &stubExec{}

	runScript(t, stub, "dance\nexit\n")

	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "Unknown command: dance")
}

func TestRunREPL_HelpDependsOnAuthState(t *testing.T) {
	out := captureOutput(t)

	runScript(t, &stubExec{authed: false}, "help\nexit\n")
	require.Contains(t, strings.Join(*out, "\n"), "register, login")

	out = captureOutput(t)
	runScript(t, &stubExec{authed: true}, "help\nexit\n")
	require.Contains(t, strings.Join(*out, "\n"), "create, whoami, logout")
}

func TestRunREPL_SkipsBlankLines(t *testing.T) {
	_ = captureOutput(t)
	stub := &stubExec{}

	runScript(t, stub, "\n   \nlogin\nexit\n")
	require.Equal(t, []string{"login"}, stub.calls)
}
