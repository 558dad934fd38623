// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of PressMap project files.
//
// A PressMap project is a tab-delimited file (TSV)
// used to store the different data files
// required to draw a score map.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for the country boundaries,
	// as a TopoJSON or GeoJSON file.
	Geometry Dataset = "geometry"

	// File for the yearly scores of each country.
	Scores Dataset = "scores"

	// File for the map settings
	// (color scale and animation).
	Settings Dataset = "settings"
)

// Datasets are the valid datasets,
// in the order they are loaded.
var Datasets = []Dataset{Geometry, Scores, Settings}

// ErrUnknownDataset is returned
// when a dataset keyword is not valid.
var ErrUnknownDataset = errors.New("unknown dataset")

// IsValid returns true if the dataset is a known dataset.
func (d Dataset) IsValid() bool {
	return slices.Contains(Datasets, d)
}

// ParseDataset returns the dataset
// of a keyword.
// Keywords are case insensitive.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w %q: valid datasets are %s", ErrUnknownDataset, s, validList())
	}
	return d, nil
}

func validList() string {
	names := make([]string, len(Datasets))
	for i, d := range Datasets {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// A Project represents the data files
// of a score map.
// The data is read with the Load method.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[Dataset]string),
	}
}

var header = []string{
	"dataset",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# pressmap project files
//	dataset	path
//	geometry	topoworld.json
//	scores	freedom.csv
//	settings	settings.yaml
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New()
	p.name = name
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "dataset"
		s, err := ParseDataset(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: %w", name, ln, f, err)
		}
		if _, dup := p.paths[s]; dup {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: dataset %q already defined", name, ln, f, s)
		}

		f = "path"
		path := strings.TrimSpace(row[fields[f]])
		if path == "" {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: empty path for dataset %q", name, ln, f, s)
		}
		p.paths[s] = path
	}

	return p, nil
}

// Add adds a filepath of a dataset to a given project.
// It returns the previous value
// for the dataset.
// If the path is empty,
// the dataset is removed.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	path = strings.TrimSpace(path)
	if path == "" {
		delete(p.paths, set)
		return prev
	}

	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project,
// in load order.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for _, s := range Datasets {
		if _, ok := p.paths[s]; ok {
			sets = append(sets, s)
		}
	}
	return sets
}

// Name returns the project file name.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# pressmap project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	sets := p.Sets()
	for _, s := range sets {
		row := []string{
			string(s),
			p.paths[s],
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
