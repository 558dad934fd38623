// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package years implements a command to print
// the years defined in a project.
package years

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/project"
)

var Command = &command.Command{
	Usage: "years [-v|--verbose] <project-file>",
	Short: "print the years of a project",
	Long: `
Command years reads the score table of a PressMap project and prints the
years defined in the table, in its chronological order, one year per line.

The argument of the command is the name of the project file.

Use the flag --verbose, or -v, to print the countries that can not be joined
between the score table and the country boundaries. Countries in the score
table without boundaries are never drawn. Countries with boundaries but no
scores are always drawn with the color for missing scores.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var verbose bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if !verbose {
		t, err := p.Scores()
		if err != nil {
			return err
		}
		for _, y := range t.Years().Years() {
			fmt.Fprintf(c.Stdout(), "%s\n", y)
		}
		return nil
	}

	m, err := p.Load()
	if err != nil {
		return err
	}
	for _, y := range m.Years() {
		fmt.Fprintf(c.Stdout(), "%s\n", y)
	}
	printMisses(c.Stdout(), m)
	return nil
}

func printMisses(w io.Writer, m *project.Map) {
	miss := feature.Missing(m.Features, m.Table)
	if len(miss) > 0 {
		fmt.Fprintf(w, "\n# scores without boundaries: %d\n", len(miss))
		for _, id := range miss {
			fmt.Fprintf(w, "%s\t%s\n", id, m.Table.Name(id))
		}
	}

	var noScore []feature.Feature
	for _, f := range m.Features {
		if !m.Table.Has(f.ID) {
			noScore = append(noScore, f)
		}
	}
	if len(noScore) > 0 {
		fmt.Fprintf(w, "\n# boundaries without scores: %d\n", len(noScore))
		for _, f := range noScore {
			fmt.Fprintf(w, "%s\t%s\n", f.ID, f.Name)
		}
	}
}
