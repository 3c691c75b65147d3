/*
Package clio opens files named by command-line flags, with stdin, stdout
and stderr defaults and error messages that point at the offending flag.
*/
package clio

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/pflag"
)

// flagString names a flag the way it appears on the command line.
func flagString(flag pflag.Flag) string {
	if flag.Shorthand == "" {
		return "--" + flag.Name
	}
	return "-" + flag.Shorthand + " / --" + flag.Name
}

// flagPathErr rewrites a path error to include the flag that supplied the
// path.
func flagPathErr(err error, flag pflag.Flag) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return errors.New(pathErr.Op + " " + flagString(flag) + " " + pathErr.Path + ": " + pathErr.Err.Error())
	}
	return err
}

// OpenIn opens the file named by flag for reading. The value "stdin"
// means os.Stdin.
func OpenIn(flag pflag.Flag) (*os.File, error) {
	inFile := flag.Value.String()
	if inFile == "stdin" {
		return os.Stdin, nil
	}
	f, err := os.Open(inFile)
	if err != nil {
		return nil, flagPathErr(err, flag)
	}
	return f, nil
}

// OpenLog creates the file named by flag for log output. The value
// "stderr" means os.Stderr. An existing file is overwritten.
func OpenLog(flag pflag.Flag) (*os.File, error) {
	logFile := flag.Value.String()
	if logFile == "stderr" {
		return os.Stderr, nil
	}
	f, err := os.Create(logFile)
	if err != nil {
		return nil, flagPathErr(err, flag)
	}
	return f, nil
}

// IsBrokenPipe reports whether err is a broken or closed pipe, as when a
// downstream consumer like `head` stops reading early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
