// Command cil-verify runs the conversion and stack-discipline conformance
// suites against the built-in native producer and reports the ordered
// outcomes.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lattice-substrate/cil-verify/cilengine"
	"github.com/lattice-substrate/cil-verify/cilsuite"
	"github.com/lattice-substrate/cil-verify/ciltrack"
)

const (
	exitSuccess  = 0
	exitFailures = 1
	exitUsage    = 2
	exitInternal = 10
)

// suiteProvider supplies the suites to execute; tests substitute providers
// that fail or defect on purpose.
type suiteProvider func() []cilsuite.Suite

func defaultSuites() []cilsuite.Suite {
	return cilsuite.DefaultSuites(cilengine.NativeProducer{})
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, defaultSuites))
}

func run(args []string, stdout, stderr io.Writer, provider suiteProvider) int {
	if len(args) == 0 {
		if err := writeUsage(stderr); err != nil {
			return exitInternal
		}
		return exitUsage
	}

	switch args[0] {
	case "run":
		return cmdRun(args[1:], stdout, stderr, provider)
	case "list":
		return cmdList(args[1:], stdout, stderr, provider)
	case "--help", "-h":
		if err := writeUsage(stdout); err != nil {
			return exitInternal
		}
		return exitSuccess
	default:
		if err := writef(stderr, "unknown command: %s\n", args[0]); err != nil {
			return exitInternal
		}
		if err := writeUsage(stderr); err != nil {
			return exitInternal
		}
		return exitUsage
	}
}

type flags struct {
	quiet  bool
	help   bool
	report string
}

func parseFlags(args []string) (flags, error) {
	var f flags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--quiet", "-q":
			f.quiet = true
		case "--help", "-h":
			f.help = true
		case "--report":
			if f.report != "" {
				return flags{}, fmt.Errorf("multiple --report destinations")
			}
			i++
			if i >= len(args) {
				return flags{}, fmt.Errorf("--report requires a destination")
			}
			f.report = args[i]
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return flags{}, fmt.Errorf("unknown option: %s", arg)
			}
			return flags{}, fmt.Errorf("unexpected argument: %s", arg)
		}
	}
	return f, nil
}

func cmdRun(args []string, stdout, stderr io.Writer, provider suiteProvider) int {
	fl, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
	}
	if fl.help {
		if err := writeRunHelp(stderr); err != nil {
			return exitInternal
		}
		return exitSuccess
	}

	run := ciltrack.NewRun()
	if err := cilsuite.RunAll(run, provider()); err != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: %v\n", err)
	}

	for _, o := range run.Outcomes() {
		switch {
		case !o.Passed && o.Defect != "":
			if err := writef(stdout, "FAIL %s (%s)\n", o.Name, o.Defect); err != nil {
				return exitInternal
			}
		case !o.Passed:
			if err := writef(stdout, "FAIL %s\n", o.Name); err != nil {
				return exitInternal
			}
		case !fl.quiet:
			if err := writef(stdout, "ok   %s\n", o.Name); err != nil {
				return exitInternal
			}
		}
	}

	sum := run.Summary()
	if err := writef(stdout, "%d passed, %d failed\n", sum.Passed, sum.Failed); err != nil {
		return exitInternal
	}

	if fl.report != "" {
		if code := emitReport(run, fl.report, stdout, stderr); code != exitSuccess {
			return code
		}
	}

	if !sum.AllPassed() {
		return exitFailures
	}
	return exitSuccess
}

func cmdList(args []string, stdout, stderr io.Writer, provider suiteProvider) int {
	fl, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
	}
	if fl.help || fl.quiet || fl.report != "" {
		return writeErrorAndReturn(stderr, exitUsage, "error: list takes no options\n")
	}

	for _, name := range cilsuite.ScenarioNames(provider()) {
		if err := writef(stdout, "%s\n", name); err != nil {
			return exitInternal
		}
	}
	return exitSuccess
}

func emitReport(run *ciltrack.Run, dest string, stdout, stderr io.Writer) int {
	report, err := run.Report()
	if err != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: building report: %v\n", err)
	}

	if dest == "-" {
		if _, err := stdout.Write(append(report, '\n')); err != nil {
			return writeErrorAndReturn(stderr, exitInternal, "error: writing report: %v\n", err)
		}
		return exitSuccess
	}

	if err := os.WriteFile(dest, report, 0o644); err != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: writing report: %v\n", err)
	}
	return exitSuccess
}

func writeErrorAndReturn(stderr io.Writer, code int, format string, args ...any) int {
	if err := writef(stderr, format, args...); err != nil {
		return exitInternal
	}
	return code
}

func writeUsage(w io.Writer) error {
	if err := writeLine(w, "usage: cil-verify <run|list> [options]"); err != nil {
		return err
	}
	if err := writeLine(w, "  run   execute all conformance suites in order"); err != nil {
		return err
	}
	return writeLine(w, "  list  print scenario names in execution order")
}

func writeRunHelp(stderr io.Writer) error {
	if err := writeLine(stderr, "usage: cil-verify run [--quiet] [--report <file|->]"); err != nil {
		return err
	}
	if err := writeLine(stderr, "  --quiet   Suppress per-scenario ok lines; failures always print"); err != nil {
		return err
	}
	return writeLine(stderr, "  --report  Write the canonical JSON report to a file, or - for stdout")
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}
