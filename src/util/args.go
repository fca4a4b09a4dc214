// args.go parses command line arguments for the Zul compiler driver.

package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options holds every switch the Zul driver understands, gathered from the command line.
type Options struct {
	Src         string // Path to source file. Must end in .zul or .줄.
	Out         string // -o: output path for -S/-c.
	EmitIR      bool   // -S: emit LLVM textual IR instead of JIT-running the program.
	EmitBC      bool   // -c: emit LLVM bitcode instead of JIT-running the program.
	TokenStream bool   // -ts: dump the token stream and exit.
	Verbose     bool   // -vb: print the number of parsed global variables; no syntax tree is printed.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "zulc 1.0"

var sourceExts = []string{".zul", ".줄"}

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments (typically os.Args[1:]).
func ParseArgs(args []string) (Options, error) {
	opt := Options{}
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--help", "-help":
			printHelp()
			os.Exit(0)
		case "-S":
			opt.EmitIR = true
		case "-c":
			opt.EmitBC = true
		case "-ts":
			opt.TokenStream = true
		case "-vb":
			opt.Verbose = true
		case "-v", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-o":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected output path, got new flag %s", args[i1+1])
			}
			opt.Out = args[i1+1]
			i1++
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			if opt.Src != "" {
				return opt, fmt.Errorf("unexpected extra positional argument: %s", args[i1])
			}
			opt.Src = args[i1]
		}
	}
	if opt.Src == "" {
		return opt, fmt.Errorf("no source file given")
	}
	if !hasSourceExt(opt.Src) {
		return opt, fmt.Errorf("source file %q must have extension .zul or .줄", opt.Src)
	}
	if opt.EmitIR && opt.EmitBC {
		return opt, fmt.Errorf("-S and -c are mutually exclusive")
	}
	return opt, nil
}

// hasSourceExt reports whether path ends in one of the accepted Zul source extensions.
func hasSourceExt(path string) bool {
	for _, e1 := range sourceExts {
		if strings.HasSuffix(path, e1) {
			return true
		}
	}
	return false
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-o\tOutput path for -S/-c.")
	_, _ = fmt.Fprintln(w, "-S\tEmit LLVM textual IR instead of JIT-running the program.")
	_, _ = fmt.Fprintln(w, "-c\tEmit LLVM bitcode instead of JIT-running the program.")
	_, _ = fmt.Fprintln(w, "-ts\tDump the token stream and exit.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print the number of parsed global variables.")
	_, _ = fmt.Fprintln(w, "-v, --version\tPrints the compiler version and exits.")
	_ = w.Flush()
}
