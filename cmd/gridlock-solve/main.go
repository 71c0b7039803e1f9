package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
	"svw.info/gridlock/internal/solver"
	"svw.info/gridlock/internal/usecase"
)

func main() { os.Exit(run()) }

// run keeps deferred cleanup (the profiler) ahead of the process exit code.
func run() int {
	explainFlag := flag.Bool("explain", false, "print deduction rationale")
	profFlag := flag.Bool("profile", false, "write a CPU profile")
	timeout := flag.Duration("timeout", 30*time.Second, "per-puzzle solve timeout")
	levelStr := flag.String("log-level", "warn", "debug|info|warn|error")
	flag.Parse()

	if lvl, err := logrus.ParseLevel(*levelStr); err == nil {
		logrus.SetLevel(lvl)
	}
	if *profFlag {
		defer profile.Start().Stop()
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: gridlock-solve [flags] puzzle.json ...")
		return 2
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := solveFile(path, *explainFlag, *timeout); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exit = 1
		}
	}
	return exit
}

func solveFile(path string, withExplanations bool, timeout time.Duration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p domain.Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid puzzle definition: %w", err)
	}

	b, cons, err := usecase.Setup(&p)
	if err != nil {
		return err
	}
	var sink *explain.Buffer
	var s explain.Sink
	if withExplanations {
		sink = explain.NewBuffer()
		s = sink
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, st, err := solver.New(cons).Solve(ctx, b, s)
	if err != nil {
		return err
	}
	fmt.Printf("%s: solved in %v, %d nodes\n", path, st.Duration.Round(time.Millisecond), st.Nodes)
	for r := 0; r < out.Height(); r++ {
		for c := 0; c < out.Width(); c++ {
			fmt.Printf("%2d ", out.Value(r, c))
		}
		fmt.Println()
	}
	if sink != nil {
		for _, line := range sink.Lines() {
			fmt.Println("  " + line)
		}
	}
	return nil
}
