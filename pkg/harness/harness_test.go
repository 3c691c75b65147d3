package harness

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testRunner(t *testing.T, out *bytes.Buffer) *Runner {
	t.Helper()
	return &Runner{Dir: t.TempDir(), Out: out, Log: zap.NewNop().Sugar()}
}

func writeFixture(t *testing.T, r *Runner, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(r.Dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context, r *Runner, name string) {}

	if err := reg.Register(Active, "first", noop); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(Active, "second", noop); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(Inactive, "third", noop); err != nil {
		t.Fatal(err)
	}

	if err := reg.Register(Active, "first", noop); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := reg.Register(Inactive, "first", noop); err == nil {
		t.Error("duplicate registration across groups should fail")
	}
	if err := reg.Register(Meta, "all", noop); err == nil {
		t.Error("shadowing a built-in meta test should fail")
	}
	if err := reg.Register(Group("sometimes"), "fourth", noop); err == nil {
		t.Error("unknown group should fail")
	}

	if got := strings.Join(reg.Names(Active), ","); got != "first,second" {
		t.Errorf("active names = %q, want %q", got, "first,second")
	}
	if got := strings.Join(reg.Names(Meta), ","); got != "all,active,inactive" {
		t.Errorf("meta names = %q, want %q", got, "all,active,inactive")
	}
	for _, name := range []string{"first", "third", "all", "inactive"} {
		if !reg.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if reg.Has("missing") {
		t.Error("Has(missing) = true")
	}
}

func TestRegistryRunOrder(t *testing.T) {
	reg := NewRegistry()
	var ran []string
	record := func(ctx context.Context, r *Runner, name string) {
		ran = append(ran, name)
	}
	reg.MustRegister(Active, "one", record)
	reg.MustRegister(Active, "two", record)
	reg.MustRegister(Inactive, "three", record)

	out := new(bytes.Buffer)
	r := testRunner(t, out)

	if err := reg.Run(context.Background(), r, "all", "two"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(ran, ","); got != "one,two,three,two" {
		t.Errorf("ran %q, want %q", got, "one,two,three,two")
	}
}

func TestRegistryRunUnknown(t *testing.T) {
	reg := NewRegistry()
	called := false
	reg.MustRegister(Active, "known", func(ctx context.Context, r *Runner, name string) {
		called = true
	})

	out := new(bytes.Buffer)
	r := testRunner(t, out)

	err := reg.Run(context.Background(), r, "known", "bogus", "fake")
	if err == nil {
		t.Fatal("expected an error for unknown test names")
	}
	want := `test(s) "bogus", "fake" unrecognized`
	if err.Error() != want {
		t.Errorf("got error %q, want %q", err.Error(), want)
	}
	if called {
		t.Error("no test should run when any name is unknown")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context, r *Runner, name string) {}
	reg.MustRegister(Active, "smoke", noop)
	reg.MustRegister(Inactive, "slow", noop)

	out := new(bytes.Buffer)
	reg.List(out)

	want := `Meta tests:
  all
  active
  inactive
Active tests:
  smoke
Inactive tests:
  slow
`
	if out.String() != want {
		t.Errorf("listing:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestCapture(t *testing.T) {
	out := new(bytes.Buffer)
	r := testRunner(t, out)

	stdout, code, err := r.Capture(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stdout != "hello\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hello\n")
	}
}

func TestGoldenSuccess(t *testing.T) {
	out := new(bytes.Buffer)
	r := testRunner(t, out)
	writeFixture(t, r, "hello.out", "hello\n")

	ok := r.Golden(context.Background(), "echo_smoke", "hello", "hello.out", "echo", "hello")
	if !ok {
		t.Error("Golden should succeed")
	}
	if r.Failures() != 0 {
		t.Errorf("failures = %d, want 0", r.Failures())
	}
	if out.String() != "echo_smoke ::: echo ::: hello\tsuccess\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestGoldenFailure(t *testing.T) {
	out := new(bytes.Buffer)
	r := testRunner(t, out)
	writeFixture(t, r, "hello.out", "goodbye\n")

	ok := r.Golden(context.Background(), "echo_smoke", "hello", "hello.out", "echo", "hello")
	if ok {
		t.Error("Golden should fail")
	}
	if r.Failures() != 1 {
		t.Errorf("failures = %d, want 1", r.Failures())
	}
	if !strings.HasPrefix(out.String(), "echo_smoke ::: echo ::: hello\tFAILED\n") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "-goodbye") || !strings.Contains(out.String(), "+hello") {
		t.Errorf("output should contain the diff, got %q", out.String())
	}
}

func TestExpectError(t *testing.T) {
	out := new(bytes.Buffer)
	r := testRunner(t, out)

	if !r.ExpectError(context.Background(), "fails", "false", "false") {
		t.Error("ExpectError(false) should succeed")
	}
	if r.ExpectError(context.Background(), "passes", "true", "true") {
		t.Error("ExpectError(true) should fail")
	}
	if r.Failures() != 1 {
		t.Errorf("failures = %d, want 1", r.Failures())
	}
}

func TestTrimmedDiff(t *testing.T) {
	lines := trimmedDiff("a\nb\nc\n", "a\nx\nc\n")
	want := []string{"@@ -1,3 +1,3 @@", " a", "-b", "+x", " c"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("diff = %q, want %q", lines, want)
	}
}

func TestHeadLines(t *testing.T) {
	lines := []string{"1", "2", "3", "4"}
	if got := headLines(lines, 10); len(got) != 4 {
		t.Errorf("headLines under the limit = %v", got)
	}
	got := headLines(lines, 2)
	if len(got) != 3 || got[2] != "\t..." {
		t.Errorf("headLines over the limit = %v", got)
	}
}
