// Command catalogctl is a thin external consumer of the catalog package:
// it loads a catalog file and prints a check report or a token dump. It is
// deliberately minimal — the engine is a library, not a service, and this
// binary exists only to exercise it from the command line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pitabwire/catalog"
)

const minArgsCommand = 2

func main() {
	if len(os.Args) < minArgsCommand {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = cmdCheck(os.Args[2:])
	case "dump":
		err = cmdDump(os.Args[2:])
	case "find":
		err = cmdFind(os.Args[2:])
	case "translate":
		err = cmdTranslate(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	exitOnErr(err)
}

func usage() {
	fmt.Fprintln(os.Stdout, "catalogctl <command> [args]")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Commands:")
	fmt.Fprintln(os.Stdout, "  check [--strict] <file>")
	fmt.Fprintln(os.Stdout, "  dump [--strict] <file>")
	fmt.Fprintln(os.Stdout, "  find [--strict] <file> <query>")
	fmt.Fprintln(os.Stdout, "  translate [--strict] <file> <token> [args...]")
}

func loadEngine(fs *flag.FlagSet, args []string) (*catalog.Engine, *flag.FlagSet, error) {
	strict := fs.Bool("strict", false, "fail on any catalog warning")
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if fs.NArg() < 1 {
		return nil, fs, errors.New("catalog file is required")
	}

	e := catalog.NewEngine()
	if !e.LoadFile(fs.Arg(0), *strict) {
		return nil, fs, fmt.Errorf("load %s: %w", fs.Arg(0), e.LastError())
	}
	return e, fs, nil
}

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	e, _, err := loadEngine(fs, args)
	if err != nil {
		return err
	}
	report, code := e.CheckReport()
	fmt.Fprint(os.Stdout, report)
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	e, _, err := loadEngine(fs, args)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, e.DumpTable())
	return nil
}

func cmdFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	e, fs, err := loadEngine(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("query is required")
	}
	for _, hit := range e.FindAny(fs.Arg(1)) {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", hit.Token, hit.MatchedIn, hit.Excerpt)
	}
	return nil
}

func cmdTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	e, fs, err := loadEngine(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("token is required")
	}
	fmt.Fprintln(os.Stdout, e.Translate(fs.Arg(1), fs.Args()[2:]...))
	return nil
}

func exitOnErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
