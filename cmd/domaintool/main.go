// Command domaintool renders, checks, and tests dialogue domains, and
// loads fact tables into bbolt files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/db/bolt"
	"github.com/Comcast/trindi/domains/travel"
	"github.com/Comcast/trindi/grammar"
	"github.com/Comcast/trindi/ibis"
	"github.com/Comcast/trindi/tools"
	"github.com/Comcast/trindi/tools/expect"
	. "github.com/Comcast/trindi/util/testutil"
)

func Usage() {
	fmt.Fprintf(os.Stderr, `Usage: domaintool COMMAND [FLAGS]

Commands:
  mermaid  write a Mermaid flowchart of the plans
  dot      write a Graphviz dot file of the plans
  html     write an HTML page documenting the domain
  analyze  write a JSON analysis of the domain
  expect   run expect session files against the domain
  consult  look up QUESTION given PROP... in the facts
  load     load fact tables into a bbolt file
  tables   list the tables in a bbolt file

Every command takes -d DOMAIN.YAML (default: the travel domain).
`)
}

// stdout is where commands write their results.
var stdout io.Writer = os.Stdout

func main() {
	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadDomain(filename string) (*ibis.StdDomain, error) {
	if filename == "" {
		t, err := travel.New()
		if err != nil {
			return nil, err
		}
		return t.Domain, nil
	}
	return tools.LoadDomain(filename)
}

func run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	var (
		domainFile = fs.String("d", "", "domain YAML file")
		css        = fs.String("css", "", "CSS file for html")
		dir        = fs.String("dir", "TB", "Mermaid direction")
		facts      = fs.String("f", "", "fact tables YAML file")
		lexicon    = fs.String("l", "", "lexicon YAML file")
		compact    = fs.Bool("compact", false, "use the compact-move grammar")
		boltFile   = fs.String("b", "facts.db", "bbolt file")
		verbose    = fs.Bool("v", false, "verbose")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "mermaid", "dot", "html", "analyze", "expect":
	case "consult":
		return consult(ctx, *facts, *verbose, fs.Args())
	case "load":
		return load(ctx, *boltFile, *facts, *verbose)
	case "tables":
		return tables(ctx, *boltFile)
	default:
		Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	d, err := loadDomain(*domainFile)
	if err != nil {
		return err
	}

	switch cmd {
	case "mermaid":
		opts := tools.DefaultMermaidOpts
		opts.Direction = *dir
		return tools.Mermaid(d, stdout, &opts)
	case "dot":
		return tools.Dot(d, stdout)
	case "html":
		var cssFiles []string
		if *css != "" {
			cssFiles = []string{*css}
		}
		return tools.RenderDomainPage(d, stdout, cssFiles)
	case "analyze":
		a, err := tools.Analyze(d)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, JSON(a))
		return nil
	}

	// expect
	g, database, err := collaborators(*domainFile, *lexicon, *facts, *compact)
	if err != nil {
		return err
	}
	newDME := func(port ibis.IO) (*ibis.DME, error) {
		dme := ibis.NewDME(d, database, g, port)
		dme.Verbose = *verbose
		return dme, nil
	}
	for _, filename := range fs.Args() {
		s, err := expect.LoadSession(filename)
		if err != nil {
			return err
		}
		s.Verbose = s.Verbose || *verbose
		if err = s.Run(ctx, newDME); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		fmt.Fprintf(stdout, "%s: ok\n", filename)
	}
	return nil
}

// collaborators finds the grammar and database for expect.  The
// travel domain's own lexicon and facts are the defaults for the
// travel domain.
func collaborators(domainFile, lexicon, facts string, compact bool) (ibis.Grammar, ibis.Database, error) {
	var t *travel.Travel
	if domainFile == "" {
		var err error
		if t, err = travel.New(); err != nil {
			return nil, nil, err
		}
	}

	var g ibis.Grammar = grammar.Compact{}
	switch {
	case compact:
	case lexicon != "":
		l, err := grammar.LoadLexicon(lexicon)
		if err != nil {
			return nil, nil, err
		}
		g = l
	case t != nil:
		g = t.Lexicon
	}

	switch {
	case facts != "":
		ts, err := db.LoadTables(facts)
		if err != nil {
			return nil, nil, err
		}
		return g, ts, nil
	case t != nil:
		return g, t.Facts, nil
	}
	return nil, nil, fmt.Errorf("expect needs facts (-f)")
}

func openStorage(ctx context.Context, filename string, verbose bool) (*bolt.Storage, error) {
	s, err := bolt.NewStorage(filename)
	if err != nil {
		return nil, err
	}
	s.Debug = verbose
	if err = s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func loadTables(facts string) (db.Tables, error) {
	if facts == "" {
		return db.ParseTables(travel.FactsSrc)
	}
	return db.LoadTables(facts)
}

// consult asks the facts a question given some propositions, which
// is handy for checking fact tables without a dialogue.
func consult(ctx context.Context, facts string, verbose bool, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("consult needs a question")
	}
	ts, err := loadTables(facts)
	if err != nil {
		return err
	}
	q, err := ibis.ParseQuestion(args[0])
	if err != nil {
		return err
	}
	com := core.NewSet[ibis.Prop]()
	for _, s := range args[1:] {
		p, err := ibis.ParseProp(s)
		if err != nil {
			return err
		}
		com.Add(p)
	}
	for _, t := range ts {
		t.Verbose = verbose
	}
	p, err := ts.Consult(ctx, q, com)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, p)
	return nil
}

// load writes each table in the facts file (default: travel facts)
// to the bbolt file.
func load(ctx context.Context, filename, facts string, verbose bool) error {
	ts, err := loadTables(facts)
	if err != nil {
		return err
	}

	s, err := openStorage(ctx, filename, verbose)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	for _, t := range ts {
		if err = s.WriteTable(ctx, t); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %d rows\n", t.Name, len(t.Rows))
	}
	return nil
}

func tables(ctx context.Context, filename string) error {
	s, err := openStorage(ctx, filename, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	names, err := s.Tables(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
