package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/zephyrtronium/exprtree"
	"github.com/zephyrtronium/exprtree/irgen"
)

type config struct {
	inname, verb string
	prec         int
	depth        int
	echo, dump   bool
	ir           bool
}

func main() {
	log.SetFlags(0)
	var cfg config
	flag.StringVar(&cfg.inname, "in", "", "input file of tree documents (default stdin if no args given)")
	flag.StringVar(&cfg.verb, "fmt", "%g", "result formatting string")
	flag.IntVar(&cfg.prec, "p", 0, "precision of calculations in bits (0 for float64)")
	flag.IntVar(&cfg.depth, "depth", exprtree.DefaultMaxDepth, "maximum tree depth (0 for no limit)")
	flag.BoolVar(&cfg.echo, "echo", false, "print rendered trees")
	flag.BoolVar(&cfg.dump, "dump", false, "dump decoded tree structures")
	flag.BoolVar(&cfg.ir, "ir", false, "print LLVM IR instead of evaluating")
	flag.Parse()
	if cfg.prec < 0 {
		log.Fatalf("precision (%d) must not be negative", cfg.prec)
	}

	var ins []io.Reader
	f, err := infile(cfg.inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		defer f.Close()
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	p, err := decodeAll(ins, exprtree.MaxDepth(cfg.depth))
	if err != nil {
		log.Fatal(err)
	}
	if err := run(os.Stdout, cfg, p); err != nil {
		log.Fatal(err)
	}
}

// decodeAll reads every tree document from every input.
func decodeAll(ins []io.Reader, opts ...exprtree.DecodeOption) ([]exprtree.Expr, error) {
	var p []exprtree.Expr
	for _, in := range ins {
		dec := exprtree.NewDecoder(in, opts...)
		for {
			e, err := dec.Decode()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			p = append(p, e)
		}
	}
	return p, nil
}

// run writes the result of each tree to w.
func run(w io.Writer, cfg config, p []exprtree.Expr) error {
	if cfg.ir {
		b := irgen.NewBuilder()
		for i, e := range p {
			b.Func("expr"+strconv.Itoa(i), e)
		}
		_, err := io.WriteString(w, b.Module().String())
		return err
	}
	var ctx *exprtree.Context
	if cfg.prec > 0 {
		ctx = exprtree.NewContext(exprtree.Prec(uint(cfg.prec)))
	}
	verb := cfg.verb + "\n"
	for _, e := range p {
		if cfg.dump {
			if _, err := fmt.Fprintln(w, litter.Sdump(e)); err != nil {
				return err
			}
		}
		if cfg.echo {
			if _, err := fmt.Fprintf(w, "%v : ", e); err != nil {
				return err
			}
		}
		var err error
		if ctx == nil {
			_, err = fmt.Fprintf(w, verb, exprtree.Eval(e))
		} else if r := ctx.Eval(e); r != nil {
			_, err = fmt.Fprintf(w, verb, r)
		} else {
			_, err = fmt.Fprintln(w, ctx.Err())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
