package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"sypiv.io/sypiv-hpc/core"
	logger "sypiv.io/sypiv-hpc/logger"
)

var parser = flags.NewNamedParser("sypiv-hpc", flags.PassDoubleDash)

// Cancelled on SIGINT/SIGTERM so a running child is signalled in turn.
var appCtx = context.Background()

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printHelp prints usage for the innermost active command.
func printHelp(parser *flags.Parser) {
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Fprintln(stdout, b.String())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	appCtx = ctx
	if cwd, err := os.Getwd(); err == nil {
		if derr := core.LoadDotEnv(cwd); derr != nil {
			logger.WarningPrintf("%v", derr)
		}
	}
	code := execute(os.Args[1:])
	stop()
	logger.Sync()
	os.Exit(code)
}

// execute parses args, runs the selected command and returns the process
// exit code.
func execute(args []string) int {
	var err error
	if _, err = parser.ParseArgs(args); err != nil {
		goto errHandler
	}
	return 0
errHandler:
	var exitErr *core.ExitError
	if errors.As(err, &exitErr) {
		// batch_sypiv already reported on its own stderr
		if exitErr.Err != nil {
			fmt.Fprintln(stderr, "run: "+exitErr.Err.Error())
		}
		return exitErr.Code
	}
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp ||
			flagsErr.Type == flags.ErrCommandRequired {
			printHelp(parser)
			return 0
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			fmt.Fprintf(stderr, "%v\n\n", flagsErr.Message)
			printHelp(parser)
			return 1
		} else if flagsErr.Type == flags.ErrMarshal {
			fmt.Fprintln(stderr, "Invalid syntax")
			printHelp(parser)
			return 1
		}
		fmt.Fprintln(stderr, flagsErr.Error())
		return 1

	default:
		logger.ErrorPrintf("%v", err)
		fmt.Fprintln(stderr, err.Error())
		return 1

	}
}
