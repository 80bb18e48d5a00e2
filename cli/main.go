package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	linden "github.com/degroot/linden/lib"
)

// CLI args struct
type Args struct {
	Iterations int
	Quiet      bool
	Check      bool

	System *linden.LSystem
}

// Handles the CLI arguments and calls into the linden lib to run the derivation
func handleCli(c *cli.Context) error {
	file := c.String("file")
	axiom := c.String("axiom")
	rules := c.StringSlice("rule")

	var system *linden.LSystem
	var err error

	if file != "" {
		system, err = linden.LoadSystemFile(file)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		if axiom == "" {
			return cli.Exit("Either --file or --axiom is required", 1)
		}

		definitions, err := linden.ParseDefinitions(c.StringSlice("define"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		system, err = linden.New(axiom, rules, linden.ParseIgnore(c.String("ignore")), definitions)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if c.IsSet("seed") {
		system.Seed(c.Uint64("seed"))
	}

	args := &Args{
		Iterations: c.Int("iterations"),
		Quiet:      c.Bool("quiet"),
		Check:      c.Bool("check"),
		System:     system,
	}

	return Run(args)
}

func Run(args *Args) error {
	system := args.System

	if args.Check {
		fmt.Printf("OK: %d rule(s), axiom %s\n", len(system.Rules()), system.CurrentWord())
		return nil
	}

	if !args.Quiet {
		fmt.Printf("0: %s\n", system.CurrentWord())
	}

	var word linden.Word

	for i := 1; i <= args.Iterations; i++ {
		var err error

		word, err = system.NextGeneration()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if !args.Quiet {
			fmt.Printf("%d: %s\n", i, word)
		}
	}

	if args.Quiet {
		fmt.Println(word)
	}

	return nil
}

func buildCliApp() *cli.App {
	// Define CLI flags
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "axiom",
			Usage: "Axiom string, e.g. \"F + + F + + F\"",
		},
		&cli.StringSliceFlag{
			Name:  "rule",
			Usage: "Production rule, e.g. \"F?F - F + + F - F\" (repeatable)",
		},
		&cli.StringFlag{
			Name:        "ignore",
			Usage:       "Symbols transparent to context search, e.g. \"+-F\"",
			DefaultText: "none",
		},
		&cli.StringSliceFlag{
			Name:  "define",
			Usage: "Global definition as name=value (repeatable)",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Load the system from a JSON description file instead of flags",
		},
		&cli.IntFlag{
			Name:  "iterations",
			Value: 1,
			Usage: "Number of generations to derive",
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Seed for stochastic rules",
			DefaultText: "fixed default",
		},
		&cli.BoolFlag{
			Name:  "check",
			Value: false,
			Usage: "Only parse the system and report, without deriving",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Value: false,
			Usage: "Print only the final generation",
		},
	}

	// Define the linden CLI
	app := &cli.App{
		Name:  "linden",
		Usage: "Derive L-systems from the command line",
		Flags: flags,
		Action: func(c *cli.Context) error {
			return handleCli(c)
		},
	}

	return app
}

func main() {
	app := buildCliApp()

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
