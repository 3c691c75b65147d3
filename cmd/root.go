package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/makovalab-psu/pairalign/pkg/clio"
)

var (
	quiet   bool
	verbose bool
	debug   bool

	rootCmd = &cobra.Command{
		Use:           "pairalign",
		Short:         "pairwise sequence alignment utilities",
		Long:          `pairwise sequence alignment utilities`,
		Version:       "0.2.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setUpLogging(cmd)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringP("log", "l", "stderr", "Print log messages to this file instead of to stderr. Warning: Will overwrite the file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print critical log messages")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print informational log messages")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Print debug log messages")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose", "debug")
}

// setUpLogging points the global logger at the file named by --log, with
// the level set by the volume flags. Messages are printed bare, without
// timestamps or levels.
func setUpLogging(cmd *cobra.Command) error {
	out, err := clio.OpenLog(*cmd.Flag("log"))
	if err != nil {
		return err
	}

	level := zapcore.WarnLevel
	switch {
	case quiet:
		level = zapcore.FatalLevel
	case verbose:
		level = zapcore.InfoLevel
	case debug:
		level = zapcore.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})
	zap.ReplaceGlobals(zap.New(zapcore.NewCore(encoder, zapcore.Lock(out), level)))

	return nil
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
