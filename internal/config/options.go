package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	DefaultPort = 4444
	DefaultSize = 10

	Usage = "usage: minesweeper [--debug] [--port PORT] [--size SIZE | --file FILE]"
)

// ConfigError reports unusable command-line options.
type ConfigError struct {
	message string
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	return e.message
}

func configErrorf(format string, args ...any) ConfigError {
	return ConfigError{fmt.Sprintf(format, args...)}
}

// Options are the startup settings given on the command line. Exactly one
// of Size and File is set.
type Options struct {
	Debug bool
	Port  int
	Size  int
	File  string
}

// sizeValue and fileValue keep --size and --file mutually exclusive:
// whichever is given last wins and clears the other.
type sizeValue struct {
	opts *Options
}

func (v sizeValue) String() string { return strconv.Itoa(v.opts.Size) }
func (v sizeValue) Type() string   { return "int" }

func (v sizeValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("unable to parse number")
	}
	v.opts.Size, v.opts.File = n, ""
	return nil
}

type fileValue struct {
	opts *Options
}

func (v fileValue) String() string { return v.opts.File }
func (v fileValue) Type() string   { return "string" }

func (v fileValue) Set(s string) error {
	v.opts.File, v.opts.Size = s, 0
	return nil
}

// noDebugValue is a bool flag that clears Debug when set.
type noDebugValue struct {
	opts *Options
}

func (v noDebugValue) String() string { return strconv.FormatBool(!v.opts.Debug) }
func (v noDebugValue) Type() string   { return "bool" }

func (v noDebugValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	v.opts.Debug = !b
	return nil
}

// ParseOptions reads command-line arguments (without the program name).
// Flags are applied in order. Any problem is reported as a [ConfigError].
func ParseOptions(args []string) (*Options, error) {
	opts := &Options{
		Port: DefaultPort,
		Size: DefaultSize,
	}

	fs := pflag.NewFlagSet("minesweeper", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.BoolVar(&opts.Debug, "debug", false, "keep clients connected after BOOM")
	fs.VarPF(noDebugValue{opts}, "no-debug", "", "disconnect clients after BOOM (default)").
		NoOptDefVal = "true"
	fs.IntVar(&opts.Port, "port", DefaultPort, "port to listen on (0-65535)")
	fs.Var(sizeValue{opts}, "size", "play on a random SIZE x SIZE board")
	fs.Var(fileValue{opts}, "file", "load the board from FILE")

	if err := fs.Parse(args); err != nil {
		return nil, ConfigError{err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, configErrorf("unknown option: %q", fs.Arg(0))
	}

	if opts.Port < 0 || opts.Port > 65535 {
		return nil, configErrorf("port %d out of range", opts.Port)
	}
	if opts.File != "" {
		info, err := os.Stat(opts.File)
		if err != nil || !info.Mode().IsRegular() {
			return nil, configErrorf("file not found: %q", opts.File)
		}
	} else if opts.Size < 1 {
		return nil, configErrorf("size %d must be positive", opts.Size)
	}

	return opts, nil
}

// Addr joins host and the configured port into a listen address.
func (o Options) Addr(host string) string {
	return fmt.Sprintf("%s:%d", host, o.Port)
}
