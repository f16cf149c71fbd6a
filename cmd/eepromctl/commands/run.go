package commands

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// command is one device subcommand.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *Env, args []string) int
}

var deviceCommands = []command{
	{"dump", "dump [-format table|hex|bin] [-o file]   Read the whole array", runDump},
	{"clear", "clear                                   Write 0x00 to every address", runClear},
	{"fill", "fill -value N                           Write N to every address", runFill},
	{"read", "read -addr A [-n N]                     Read N bytes at A", runRead},
	{"write", "write -addr A [-pages] HEXBYTES         Write bytes at A", runWrite},
	{"status", "status                                  Show the STATUS register", runStatus},
	{"protect", "protect -level none|quarter|half|all    Set block protection", runProtect},
	{"program", "program FILE.hex                        Write and verify an Intel HEX image", runProgram},
	{"verify", "verify FILE.hex                         Compare the device with an Intel HEX image", runVerify},
}

// IsDeviceCommand reports whether name is a command that needs a device.
func IsDeviceCommand(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Run executes one device command and returns its exit code.
func Run(ctx context.Context, env *Env, name string, args []string) int {
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", name)
		return exitCommandError
	}
	return cmd.run(ctx, env, args)
}

// PrintCommands writes the command list.
func PrintCommands(w io.Writer) {
	for _, c := range deviceCommands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range deviceCommands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func newFlagSet(name string, env *Env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	return fs
}

// fail prints err and maps it to an exit code.
func fail(env *Env, err error) int {
	fmt.Fprintf(env.Stderr, "Error: %v\n", err)

	var mismatch *eeprom.VerifyMismatchError
	if errors.As(err, &mismatch) {
		return exitMismatch
	}
	return exitCommandError
}

// parseAddress accepts decimal, 0x hex, 0o octal and 0b binary.
func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %q", s)
	}
	return byte(v), nil
}

// parseHexBytes joins the arguments and decodes them as hex. Separators
// (spaces, colons, commas) and 0x prefixes are ignored.
func parseHexBytes(args []string) ([]byte, error) {
	var b strings.Builder
	for _, a := range args {
		for _, field := range strings.FieldsFunc(a, func(r rune) bool {
			return r == ':' || r == ',' || r == ' '
		}) {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			if len(field)%2 == 1 {
				field = "0" + field
			}
			b.WriteString(field)
		}
	}

	s := b.String()
	if s == "" {
		return nil, fmt.Errorf("no data given")
	}

	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return out, nil
}
