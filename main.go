// Command cat2verilog translates cat hardware descriptions into Verilog.
//
//	cat2verilog [flags] <input> <output> [<input> <output> ...]
//
// Each pair is compiled independently; a failed compilation writes no output
// file. The exit code is 0 when every pair compiles, 1 when any fails and 2
// on a usage error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/fexolm/cat2verilog/compiler"
	"github.com/fexolm/cat2verilog/logger"
	"golang.org/x/sync/errgroup"
)

type job struct {
	input, output string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("cat2verilog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log pipeline phases")
	format := fs.String("log-format", "text", "log format: text or json")
	strict := fs.Bool("strict", false, "reject signals that are never driven")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cat2verilog [flags] <input> <output> [<input> <output> ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 || len(paths)%2 != 0 {
		fs.Usage()
		return 2
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "cat2verilog: unknown log format %q\n", *format)
		return 2
	}

	cfg := logger.DefaultConfig()
	cfg.Output = stderr
	cfg.Format = *format
	if *verbose {
		cfg.Level = logger.LevelDebug
	}
	logger.Init(cfg)

	var jobs []job
	for i := 0; i < len(paths); i += 2 {
		jobs = append(jobs, job{input: paths[i], output: paths[i+1]})
	}

	opts := compiler.Options{Strict: *strict}
	errs := make([]error, len(jobs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			errs[i] = compileFile(j, opts)
			return errs[i]
		})
	}
	status := 0
	if err := g.Wait(); err != nil {
		status = 1
	}
	// report in argument order regardless of completion order
	for _, err := range errs {
		if err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
	return status
}

func compileFile(j job, opts compiler.Options) (err error) {
	start := time.Now()
	defer func() {
		logger.LogFileDone(j.input, err == nil, time.Since(start))
	}()

	src, err := os.ReadFile(j.input)
	if err != nil {
		return err
	}
	res, err := compiler.Compile(j.input, src, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.LogWarning(j.input, w.Pos.Line, w.Pos.Col, w.Message())
	}
	return os.WriteFile(j.output, res.Verilog, 0o644)
}
