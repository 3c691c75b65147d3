/*
Package harness is a registry and runner for command-line golden-file
tests. Tests are registered by name into active, inactive and meta groups,
and typically shell out to a target program and diff its stdout against a
fixture file.
*/
package harness

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Group is a suite of registered tests.
type Group string

const (
	// Meta tests run other tests.
	Meta Group = "meta"
	// Active tests are the maintained suite.
	Active Group = "active"
	// Inactive tests are kept runnable but are expected to need care:
	// they only run when asked for by name or through a meta test.
	Inactive Group = "inactive"
)

// The built-in meta tests. "all" runs the active then the inactive group,
// "active" and "inactive" run one group each.
var builtinMeta = []string{"all", "active", "inactive"}

// A TestFunc runs one named test, reporting results through the Runner.
type TestFunc func(ctx context.Context, r *Runner, name string)

// A Registry holds the defined tests, preserving registration order
// within each group.
type Registry struct {
	order map[Group][]string
	tests map[string]registration
}

type registration struct {
	group Group
	fn    TestFunc
}

// NewRegistry returns an empty registry. The built-in meta tests are
// always defined.
func NewRegistry() *Registry {
	return &Registry{
		order: make(map[Group][]string),
		tests: make(map[string]registration),
	}
}

// Register adds a named test to a group. Names must be unique across all
// groups and must not shadow a built-in meta test.
func (reg *Registry) Register(group Group, name string, fn TestFunc) error {
	switch group {
	case Meta, Active, Inactive:
	default:
		return fmt.Errorf("unknown test group %q", group)
	}
	if slices.Contains(builtinMeta, name) {
		return fmt.Errorf("test name %q shadows a built-in meta test", name)
	}
	if _, ok := reg.tests[name]; ok {
		return fmt.Errorf("test %q is already registered", name)
	}
	reg.tests[name] = registration{group: group, fn: fn}
	reg.order[group] = append(reg.order[group], name)
	return nil
}

// MustRegister is Register, panicking on error. For use at startup.
func (reg *Registry) MustRegister(group Group, name string, fn TestFunc) {
	if err := reg.Register(group, name, fn); err != nil {
		panic(err)
	}
}

// Has reports whether name is a registered or built-in test.
func (reg *Registry) Has(name string) bool {
	if slices.Contains(builtinMeta, name) {
		return true
	}
	_, ok := reg.tests[name]
	return ok
}

// Names returns the tests in a group, in registration order. For Meta the
// built-in tests come first.
func (reg *Registry) Names(group Group) []string {
	names := slices.Clone(reg.order[group])
	if group == Meta {
		names = append(slices.Clone(builtinMeta), names...)
	}
	return names
}

// Run resolves every requested name, then runs them in order. If any name
// is unknown, nothing runs.
func (reg *Registry) Run(ctx context.Context, r *Runner, names ...string) error {
	var unknown []string
	for _, name := range names {
		if !reg.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("test(s) \"%s\" unrecognized", strings.Join(unknown, `", "`))
	}
	for _, name := range names {
		reg.runOne(ctx, r, name)
	}
	return nil
}

func (reg *Registry) runOne(ctx context.Context, r *Runner, name string) {
	switch name {
	case "all":
		reg.RunGroup(ctx, r, Active)
		reg.RunGroup(ctx, r, Inactive)
	case "active":
		reg.RunGroup(ctx, r, Active)
	case "inactive":
		reg.RunGroup(ctx, r, Inactive)
	default:
		reg.tests[name].fn(ctx, r, name)
	}
}

// RunGroup runs every test in a group, in registration order.
func (reg *Registry) RunGroup(ctx context.Context, r *Runner, group Group) {
	for _, name := range reg.order[group] {
		reg.tests[name].fn(ctx, r, name)
	}
}

// List writes the defined tests by group, the listing shown when the test
// command is given no names.
func (reg *Registry) List(w io.Writer) {
	for _, group := range []Group{Meta, Active, Inactive} {
		name := string(group)
		fmt.Fprintf(w, "%s tests:\n", strings.ToUpper(name[:1])+name[1:])
		for _, name := range reg.Names(group) {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
