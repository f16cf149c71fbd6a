package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// RunShell starts an interactive prompt that runs device commands against
// env until EOF or "quit". It returns the exit code of the last command.
func RunShell(ctx context.Context, env *Env) int {
	items := make([]readline.PrefixCompleterInterface, 0, len(deviceCommands)+2)
	for _, c := range deviceCommands {
		items = append(items, readline.PcItem(c.name))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("quit"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eeprom> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    readline.NewPrefixCompleter(items...),
	})
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: failed to create readline: %v\n", err)
		return exitCommandError
	}
	defer rl.Close()

	shellEnv := &Env{Device: env.Device, Stdout: rl.Stdout(), Stderr: rl.Stderr()}
	fmt.Fprintf(shellEnv.Stdout, "%s on chip select %d. Type 'help' for commands.\n",
		env.Device.Part(), env.Device.ChipSelect())

	last := exitSuccess
	for {
		if ctx.Err() != nil {
			return last
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return last
		}

		code, quit := execLine(ctx, shellEnv, line)
		if quit {
			return last
		}
		if code >= 0 {
			last = code
		}
	}
}

// execLine runs one shell line. It returns -1 for lines that run no command.
func execLine(ctx context.Context, env *Env, line string) (code int, quit bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return -1, false
	}

	name := strings.ToLower(fields[0])
	switch name {
	case "quit", "exit", "q":
		return -1, true
	case "help", "?":
		printShellHelp(env.Stdout)
		return -1, false
	}

	if !IsDeviceCommand(name) {
		fmt.Fprintf(env.Stdout, "Unknown command: %s (type 'help' for commands)\n", name)
		return exitCommandError, false
	}
	return Run(ctx, env, name, fields[1:]), false
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	PrintCommands(w)
	fmt.Fprintln(w, "  quit                                    Leave the shell")
}
