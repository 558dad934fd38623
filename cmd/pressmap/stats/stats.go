// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// the summary statistics of the scores
// of each year.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/scores"
)

var Command = &command.Command{
	Usage: "stats [--year <year>] <project-file>",
	Short: "print summary statistics of the scores",
	Long: `
Command stats reads the score table of a PressMap project and prints the
summary statistics of the scores of each year.

The argument of the command is the name of the project file.

The output is a tab-delimited table with the following columns:

	year    the year
	n       the number of countries with a valid score
	mean    the mean score
	sd      the standard deviation of the scores
	median  the median score
	min     the minimum score
	max     the maximum score

Use the flag --year to print the statistics of a single year.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var yearFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&yearFlag, "year", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Scores()
	if err != nil {
		return err
	}

	years := t.Years().Years()
	if yearFlag != "" {
		if !t.Years().Has(yearFlag) {
			return fmt.Errorf("year %q not defined in project %q", yearFlag, args[0])
		}
		years = []string{yearFlag}
	}

	sum := make([]scores.Summary, 0, len(years))
	for _, y := range years {
		sum = append(sum, t.Summary(y))
	}
	return writeSummary(c.Stdout(), sum)
}

func writeSummary(w io.Writer, sum []scores.Summary) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"year", "n", "mean", "sd", "median", "min", "max"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, s := range sum {
		row := []string{
			s.Year,
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.Mean, 'f', 3, 64),
			strconv.FormatFloat(s.StdDev, 'f', 3, 64),
			strconv.FormatFloat(s.Median, 'f', 3, 64),
			strconv.FormatFloat(s.Min, 'f', 3, 64),
			strconv.FormatFloat(s.Max, 'f', 3, 64),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
