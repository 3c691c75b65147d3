package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/makovalab-psu/pairalign/pkg/harness"
)

var testsDir string

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVarP(&testsDir, "tests-dir", "d", "tests", "Directory holding the golden fixture files")
}

var testCmd = &cobra.Command{
	Use:   "test [test_name...]",
	Short: "Run the command-line test suite",
	Long: `Run the command-line test suite.

Example usage:
	pairalign test
	pairalign test all
	pairalign test align_smoke align_matrix_errors

Each test re-runs this binary as a subprocess and diffs its stdout against
golden files in the tests directory. With no arguments, the defined tests
are listed by group. The meta tests "all", "active" and "inactive" run
whole groups.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		reg := harness.NewRegistry()
		if err := registerCLITests(reg); err != nil {
			return err
		}

		if len(args) == 0 {
			reg.List(os.Stdout)
			return errors.New("name at least one test to run")
		}

		runner := &harness.Runner{Dir: testsDir, Out: os.Stdout, Log: zap.S()}
		if err := reg.Run(cmd.Context(), runner, args...); err != nil {
			return err
		}
		if n := runner.Failures(); n > 0 {
			return fmt.Errorf("%d check(s) failed", n)
		}
		return nil
	},
}

// registerCLITests defines the golden tests for the align subcommand. The
// subprocesses run this same binary.
func registerCLITests(reg *harness.Registry) error {
	self, err := os.Executable()
	if err != nil {
		return err
	}

	alignSmoke := func(ctx context.Context, r *harness.Runner, name string) {
		matrix := filepath.Join(r.Dir, "sub-matrix.txt")
		cases := []struct {
			golden string
			args   []string
		}{
			{"align.global.out", []string{"align", "GATTACA", "GATTACA", "-s", "global", "-m", matrix}},
			{"align.local.out", []string{"align", "GATTACA", "TTAC", "-m", matrix}},
			{"align.gap.out", []string{"align", "GACGT", "GAGT", "-s", "global", "-o", "1", "-m", matrix}},
		}
		for _, c := range cases {
			r.Golden(ctx, name, c.golden, c.golden, append([]string{self}, c.args...)...)
		}
	}

	alignMatrixErrors := func(ctx context.Context, r *harness.Runner, name string) {
		r.ExpectError(ctx, name, "bad-matrix.txt",
			self, "align", "GAT", "GAT", "-m", filepath.Join(r.Dir, "bad-matrix.txt"))
		r.ExpectError(ctx, name, "missing matrix",
			self, "align", "GAT", "GAT", "-m", filepath.Join(r.Dir, "no-such-matrix.txt"))
		r.ExpectError(ctx, name, "bad scope",
			self, "align", "GAT", "GAT", "-s", "sideways")
	}

	alignDefaultMatrix := func(ctx context.Context, r *harness.Runner, name string) {
		r.Golden(ctx, name, "align.default.out", "align.default.out",
			self, "align", "GATTACA", "GATTACA", "-s", "global")
	}

	reg.MustRegister(harness.Active, "align_smoke", alignSmoke)
	reg.MustRegister(harness.Active, "align_matrix_errors", alignMatrixErrors)
	// Pinned to the built-in matrix's current scores.
	reg.MustRegister(harness.Inactive, "align_default_matrix", alignDefaultMatrix)

	return nil
}
