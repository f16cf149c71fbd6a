// eepromctl reads, writes and programs 25xx SPI EEPROMs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/moffa90/go-eeprom25/cmd/eepromctl/commands"
)

const version = "0.1.0"

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts commands.Options

	fs := flag.NewFlagSet("eepromctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	fs.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file (default: simulated 25LC320A)")
	fs.StringVar(&opts.DeviceName, "device", "", "device name from the configuration (default: first)")
	fs.BoolVar(&opts.Verbose, "v", false, "debug logging")
	fs.BoolVar(&opts.Progress, "progress", false, "show progress of bulk operations")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitSuccess
		}
		return exitCommandError
	}

	if fs.NArg() < 1 {
		printUsage(stderr)
		return exitCommandError
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]

	switch cmd {
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitSuccess
	case "version", "--version":
		fmt.Fprintf(stdout, "eepromctl version %s\n", version)
		return exitSuccess
	}

	if cmd != "shell" && !commands.IsDeviceCommand(cmd) {
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return exitCommandError
	}

	env, err := commands.Open(opts, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.Close()

	if cmd == "shell" {
		return commands.RunShell(ctx, env)
	}
	return commands.Run(ctx, env, cmd, cmdArgs)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `eepromctl - 25xx SPI EEPROM tool

Usage:
  eepromctl [-config file] [-device name] [-v] [-progress] <command> [options]

Commands:`)
	commands.PrintCommands(w)
	fmt.Fprintln(w, `  shell                                   Interactive prompt
  help                                    Show this help message
  version                                 Show version information

Without -config the commands run against a simulated 25LC320A.

Exit codes:
  0  success
  1  command error
  2  verify mismatch

Examples:
  eepromctl -config eeprom.yaml dump -format hex -o backup.hex
  eepromctl -config eeprom.yaml write -addr 0x40 de ad be ef
  eepromctl -config eeprom.yaml -progress program calibration.hex`)
}
