// Command play runs a minefield game in the terminal. Commands are read from
// stdin one per line:
//
//	o row col   reveal
//	f row col   flag
//	q row col   question mark
//	t row col   cycle the marks
//	u row col   clear marks
//	p b x y     press button b at pixel (x, y)
//	x           give up
//	g           print the board
package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var (
	log = logrus.New()

	preset string
	board  string
	rows   int
	cols   int
	count  int
	seed   uint64
	debug  bool
)

func init() {
	flag.StringVar(&preset, "preset", "", "beginner, intermediate, expert or random")
	flag.StringVar(&board, "board", "", "board as rows:cols:mines")
	flag.IntVar(&rows, "rows", 9, "number of rows")
	flag.IntVar(&cols, "cols", 9, "number of columns")
	flag.IntVar(&count, "mines", 10, "number of mines")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.BoolVar(&debug, "debug", false, "verbose logging")
}

func options() (session.Options, error) {
	if board != "" {
		p, err := mines.ParseSeed(board)
		if err != nil {
			return session.Options{}, err
		}
		return session.Options{Rows: p.Rows, Cols: p.Cols, MineCount: p.MineCount}, nil
	}
	return session.Options{
		Preset:    preset,
		Rows:      rows,
		Cols:      cols,
		MineCount: count,
	}, nil
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	level := logrus.WarnLevel
	if debug {
		level = logrus.DebugLevel
	}
	for _, l := range []*logrus.Logger{log, mines.Log, session.Log} {
		l.SetLevel(level)
		l.SetOutput(os.Stderr)
	}

	opts, err := options()
	if err != nil {
		log.Fatal(err)
	}

	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	log.WithField("seed", seed).Debug("random source")

	s, err := session.New(opts, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(s)
	scanner := bufio.NewScanner(os.Stdin)
	for s.Outcome() == session.Playing && scanner.Scan() {
		if err := s.ExecuteAll(scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(s)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
