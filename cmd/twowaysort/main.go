package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pingcap/talentplan/tidb/twowaysort"
)

type cliFlags struct {
	ConfigPath string
	InputPath  string
	Gen        string
	N          int
	Seed       int64
	Verify     bool
	Timeout    time.Duration
}

func main() {
	err := newRootCmd(os.Stdout).ExecuteContext(context.Background())
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var flags cliFlags
	cmd := &cobra.Command{
		Use:           "twowaysort [ints...]",
		Short:         "Sort integers with two parallel sort workers and one merge worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), stdout, flags, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.ConfigPath, "config", "twowaysort.yml", "path to the YAML config file")
	fs.StringVar(&flags.InputPath, "input", "", "read whitespace-separated integers from this file ('-' for stdin)")
	fs.StringVar(&flags.Gen, "gen", "", "generate the input: uniform, skewed, equal, asc or desc")
	fs.IntVar(&flags.N, "n", 16, "number of elements to generate with --gen")
	fs.Int64Var(&flags.Seed, "seed", 1, "random seed for --gen")
	fs.BoolVar(&flags.Verify, "verify", false, "check the output before printing it")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "give up after this long, e.g. 500ms")
	// glog registers -v, -logtostderr and friends on the standard flag set.
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func run(ctx context.Context, stdout io.Writer, flags cliFlags, args []string) error {
	// glog complains about logging before flag.Parse.
	if !flag.Parsed() {
		flag.CommandLine.Parse(nil)
	}

	cfg, err := twowaysort.LoadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.Verify {
		cfg.Verify = true
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	seq, err := readInput(flags, args)
	if err != nil {
		return err
	}
	s, err := twowaysort.NewSorter(cfg)
	if err != nil {
		return err
	}
	out, stats, err := s.SortWithStats(ctx, seq)
	if err != nil {
		return err
	}
	glog.V(1).Infof("sorted %v and %v in %v + %v", stats.Left, stats.Right, stats.SortPhase, stats.MergePhase)
	return printSeq(stdout, out)
}

func readInput(flags cliFlags, args []string) ([]int64, error) {
	switch {
	case flags.Gen != "":
		gen, err := twowaysort.CaseGen(flags.Gen)
		if err != nil {
			return nil, err
		}
		if flags.N < 0 {
			return nil, errors.Errorf("--n must not be negative, got %d", flags.N)
		}
		return gen(rand.New(rand.NewSource(flags.Seed)), flags.N), nil
	case flags.InputPath == "-":
		return parseInts(os.Stdin)
	case flags.InputPath != "":
		f, err := os.Open(flags.InputPath)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer f.Close()
		return parseInts(f)
	case len(args) > 0:
		return parseInts(strings.NewReader(strings.Join(args, " ")))
	}
	return twowaysort.ReferenceInput(), nil
}

func parseInts(r io.Reader) ([]int64, error) {
	var seq []int64
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", len(seq))
		}
		seq = append(seq, v)
	}
	return seq, errors.WithStack(scanner.Err())
}

func printSeq(w io.Writer, seq []int64) error {
	buf := bufio.NewWriter(w)
	for i, v := range seq {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatInt(v, 10))
	}
	buf.WriteByte('\n')
	return buf.Flush()
}
