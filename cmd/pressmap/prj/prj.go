// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to add datasets
// and print the basic information of a project.
package prj

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/settings"
)

var Command = &command.Command{
	Usage: "project [--add <dataset>] <project-file> [<file>]",
	Short: "add datasets and print information about a project",
	Long: `
Command project reads a PressMap project and prints the information of the
different project elements into the standard output.

The first argument of the command is the name of the project file.

Use the flag --add to add a dataset to the project. The second argument is
the path of the dataset file. If no project exists, a new project will be
created. If the dataset is already defined in the project, its path will be
replaced by the path of the added file. The file will be read before adding
it to the project. Valid datasets are:

	geometry  for the country boundaries
	scores    for the score table
	settings  for the map settings

If the file of a settings dataset does not exist, a new settings file with
the default values will be created.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFlag, "add", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	if addFlag != "" {
		if len(args) < 2 {
			return c.UsageError("expecting dataset file")
		}
		set, err := project.ParseDataset(addFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --add: %v", err))
		}
		return addDataset(c.Stderr(), args[0], set, args[1])
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	return printProject(c.Stdout(), p)
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func addDataset(w io.Writer, name string, set project.Dataset, path string) error {
	p, err := openProject(name)
	if err != nil {
		return err
	}

	if set == project.Settings {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			s := settings.New(path)
			if err := s.Write(); err != nil {
				return err
			}
		}
	}

	prev := p.Add(set, path)

	// check that the new dataset is valid
	st, err := p.Settings()
	if err != nil {
		return err
	}
	switch set {
	case project.Geometry:
		if _, err := p.Geometry(st); err != nil {
			return err
		}
	case project.Scores:
		if _, err := p.Scores(); err != nil {
			return err
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	if prev != "" && prev != path {
		fmt.Fprintf(w, "dataset %q: replaced %q\n", set, prev)
	}
	return nil
}

func printProject(w io.Writer, p *project.Project) error {
	set, err := p.Settings()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Settings:\n")
	if name := p.Path(project.Settings); name != "" {
		fmt.Fprintf(w, "\tfile: %s\n", name)
	} else {
		fmt.Fprintf(w, "\tfile: <default>\n")
	}
	sc, err := set.Scale()
	if err != nil {
		return err
	}
	lo, hi := sc.Domain()
	fmt.Fprintf(w, "\tcolors: %d [%g-%g]\n", sc.Len(), lo, hi)
	fmt.Fprintf(w, "\tinterval: %v\n", set.Interval)
	fmt.Fprintf(w, "\n")

	if p.Path(project.Geometry) != "" {
		cs, err := p.Geometry(set)
		if err != nil {
			return err
		}
		shapes := 0
		for _, c := range cs {
			if len(c.Shape) > 0 {
				shapes++
			}
		}
		fmt.Fprintf(w, "Country boundaries:\n")
		fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Geometry))
		fmt.Fprintf(w, "\tcountries: %d\n", len(cs))
		fmt.Fprintf(w, "\twith shape: %d\n", shapes)
		fmt.Fprintf(w, "\n")
	}

	if p.Path(project.Scores) != "" {
		t, err := p.Scores()
		if err != nil {
			return err
		}
		years := t.Years().Years()
		fmt.Fprintf(w, "Scores:\n")
		fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Scores))
		fmt.Fprintf(w, "\tcountries: %d\n", len(t.IDs()))
		fmt.Fprintf(w, "\tyears: %d [%s-%s]\n", len(years), years[0], years[len(years)-1])
		fmt.Fprintf(w, "\n")
	}

	if p.Path(project.Geometry) != "" && p.Path(project.Scores) != "" {
		m, err := p.Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Join:\n")
		fmt.Fprintf(w, "\tscores without boundaries: %d\n", len(feature.Missing(m.Features, m.Table)))
		fmt.Fprintf(w, "\n")
	}

	return nil
}
