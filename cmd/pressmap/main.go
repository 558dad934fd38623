// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PressMap is a tool to draw and animate
// choropleth maps of press freedom scores.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/pressmap/cmd/pressmap/draw"
	"github.com/js-arias/pressmap/cmd/pressmap/play"
	"github.com/js-arias/pressmap/cmd/pressmap/plotcmd"
	"github.com/js-arias/pressmap/cmd/pressmap/prj"
	"github.com/js-arias/pressmap/cmd/pressmap/stats"
	"github.com/js-arias/pressmap/cmd/pressmap/years"
)

var app = &command.Command{
	Usage: "pressmap <command> [<argument>...]",
	Short: "a tool to map press freedom scores",
}

func init() {
	app.Add(prj.Command)
	app.Add(years.Command)
	app.Add(draw.Command)
	app.Add(stats.Command)
	app.Add(plotcmd.Command)
	app.Add(play.Command)
}

func main() {
	app.Main()
}
