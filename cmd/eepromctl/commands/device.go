package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/moffa90/go-eeprom25/hexfile"
	"github.com/moffa90/go-eeprom25/protocol"
)

func runDump(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("dump", env)
	format := fs.String("format", "table", "output format: table, hex or bin")
	output := fs.String("o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	switch *format {
	case "table", "hex", "bin":
	default:
		return fail(env, fmt.Errorf("unknown format %q", *format))
	}

	w := env.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fail(env, err)
		}
		defer f.Close()
		w = f
	}

	if *format == "table" {
		if _, err := env.Device.DumpAll(ctx, w); err != nil {
			return fail(env, err)
		}
		return exitSuccess
	}

	data, err := env.Device.Dump(ctx)
	if err != nil {
		return fail(env, err)
	}

	if *format == "hex" {
		err = hexfile.Encode(w, 0, data)
	} else {
		_, err = w.Write(data)
	}
	if err != nil {
		return fail(env, err)
	}
	return exitSuccess
}

func runClear(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("clear", env)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	n, err := env.Device.ClearAll(ctx)
	if err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "cleared %d bytes\n", n)
	return exitSuccess
}

func runFill(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("fill", env)
	value := fs.String("value", "", "byte value to write (e.g. 0xFF)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if *value == "" {
		return fail(env, fmt.Errorf("-value is required"))
	}

	v, err := parseByte(*value)
	if err != nil {
		return fail(env, err)
	}

	n, err := env.Device.Fill(ctx, v)
	if err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "filled %d bytes with 0x%02X\n", n, v)
	return exitSuccess
}

func runRead(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("read", env)
	addr := fs.String("addr", "0", "start address")
	count := fs.Int("n", 1, "number of bytes")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	a, err := parseAddress(*addr)
	if err != nil {
		return fail(env, err)
	}
	// Past one full array a read only repeats itself.
	if *count > env.Device.Size() {
		return fail(env, fmt.Errorf("-n must be at most %d, got %d", env.Device.Size(), *count))
	}

	data, err := env.Device.ReadBytes(ctx, a, *count)
	if err != nil {
		return fail(env, err)
	}

	for off := 0; off < len(data); off += 16 {
		end := min(off+16, len(data))
		fmt.Fprintf(env.Stdout, "0x%04X: % x\n", (int(a)+off)%env.Device.Size(), data[off:end])
	}
	return exitSuccess
}

func runWrite(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("write", env)
	addr := fs.String("addr", "", "start address")
	pages := fs.Bool("pages", false, "continue into following pages instead of applying the span policy")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if *addr == "" {
		return fail(env, fmt.Errorf("-addr is required"))
	}

	a, err := parseAddress(*addr)
	if err != nil {
		return fail(env, err)
	}
	data, err := parseHexBytes(fs.Args())
	if err != nil {
		return fail(env, err)
	}

	if *pages {
		err = env.Device.WritePages(ctx, a, data)
	} else {
		err = env.Device.Write(ctx, a, data)
	}
	if err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "wrote %d bytes at 0x%04X\n", len(data), a)
	return exitSuccess
}

func runStatus(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("status", env)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	st, err := env.Device.ReadStatus(ctx)
	if err != nil {
		return fail(env, err)
	}

	d := env.Device
	fmt.Fprintf(env.Stdout, "part:      %s\n", d.Part())
	fmt.Fprintf(env.Stdout, "status:    %s\n", st)
	if end := st.BlockProtect().ProtectedFrom(d.Size()); end > 0 {
		fmt.Fprintf(env.Stdout, "writable:  0x0000-0x%04X\n", end-1)
	} else {
		fmt.Fprintln(env.Stdout, "writable:  none")
	}
	return exitSuccess
}

func runProtect(ctx context.Context, env *Env, args []string) int {
	fs := newFlagSet("protect", env)
	level := fs.String("level", "", "none, quarter, half or all")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	bp, err := protocol.ParseBlockProtect(*level)
	if err != nil {
		return fail(env, err)
	}
	if err := env.Device.WriteStatus(ctx, bp); err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "block protection: %s\n", bp)
	return exitSuccess
}

func runProgram(ctx context.Context, env *Env, args []string) int {
	img, code := loadImage(env, "program", args)
	if img == nil {
		return code
	}

	if err := env.Device.Program(ctx, img); err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "programmed %d bytes in %d segments\n", img.Size(), len(img.Segments))
	return exitSuccess
}

func runVerify(ctx context.Context, env *Env, args []string) int {
	img, code := loadImage(env, "verify", args)
	if img == nil {
		return code
	}

	if err := env.Device.Verify(ctx, img); err != nil {
		return fail(env, err)
	}
	fmt.Fprintf(env.Stdout, "verified %d bytes: OK\n", img.Size())
	return exitSuccess
}

func loadImage(env *Env, name string, args []string) (*hexfile.Image, int) {
	fs := newFlagSet(name, env)
	if err := fs.Parse(args); err != nil {
		return nil, exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(env.Stderr, "Error: %s needs exactly one file\n", name)
		return nil, exitCommandError
	}

	img, err := hexfile.Parse(fs.Arg(0))
	if err != nil {
		return nil, fail(env, err)
	}
	return img, exitSuccess
}
