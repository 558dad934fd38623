// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(geometryFilesGuide)
	app.Add(projectsGuide)
	app.Add(scoreFilesGuide)
	app.Add(settingsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PressMap requires several files to draw a map. To reduce the burden of keeping
track of many files, a single project file is used to hold the reference of
all files required to draw the map. This guide explains the structure of the
file, but most of the time, the best way to edit or view this file is by using
the command 'pressmap project'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# pressmap project files
	dataset	path
	geometry	topoworld.json
	scores	freedom.csv
	settings	settings.yaml

The valid file types are:

- Country boundaries. Defined by the dataset keyword "geometry". This file
  contains the shape of each country as a TopoJSON or a GeoJSON file. See
  'pressmap help geometry-files'.
- Score table. Defined by the dataset keyword "scores". This file contains
  the scores of each country at each year as a CSV file. See
  'pressmap help score-files'.
- Map settings. Defined by the dataset keyword "settings". This file contains
  the color scale and the animation settings as a YAML file. This file is
  optional. See 'pressmap help settings-files'.
	`,
}

var geometryFilesGuide = &command.Command{
	Usage: "geometry-files",
	Short: "about country boundary files",
	Long: `
The country boundaries are read from a TopoJSON or a GeoJSON file. Files with
the extension '.geojson' are read as GeoJSON; any other file is read as
TopoJSON.

In a TopoJSON file, the countries are the geometries of a geometry collection
object, by default "world". Polygons and multipolygons are the only valid
shapes; geometries without shape are kept, but they are never drawn. Arcs can
be quantized (using the transform of the topology) and reversed (using the
one's complement of the arc index).

In a GeoJSON file, each feature of a feature collection is a country.

The ID of a country must be its ISO 3166 alpha-3 code, and it is taken from
the "id" member of the geometry (or feature). If there is no ID, the settings
file can define a property used as the ID (for example "iso_a3").

In a PressMap project, the file with the country boundaries is indicated with
the "geometry" keyword.
	`,
}

var scoreFilesGuide = &command.Command{
	Usage: "score-files",
	Short: "about score files",
	Long: `
The scores are read from a CSV file, in which each row is a country, and each
column, except the country columns, is a year. The columns for the country
are:

	- Country  the name of the country
	- ISO3166  the ISO 3166 alpha-3 code of the country

Here is an example file:

	Country,ISO3166,1993,1994,1995
	Argentina,ARG,32,30,30
	United States,USA,10,12,
	Mexico,MEX,48,n/a,60

Empty cells, or cells that are not numbers, are taken as missing scores.
Rows without an ISO3166 code are ignored. If a code is repeated, only the
first row is used.

If the file has the extension '.tab' or '.tsv' it is read as a tab-delimited
file.

In a PressMap project, the file with the scores is indicated with the
"scores" keyword.
	`,
}

var settingsGuide = &command.Command{
	Usage: "settings-files",
	Short: "about map settings files",
	Long: `
The settings of a map are stored in a YAML file. All the settings are
optional, and undefined settings take their default values.

The valid settings are:

	- palette     the colors of the scale, from the first to the last
	              bucket of the domain.
	- gradient    a color blind safe gradient used instead of the palette.
	              Valid values are "gradient", "incandescent",
	              "iridescent", and "rainbow".
	- buckets     the number of colors of the gradient (default 10).
	- domain      the domain of the scores (default [0, 100]). The first
	              color is assigned to the first value of the domain, so
	              a reversed domain (for example [100, 0]) reverses the
	              scale.
	- missing     the color for countries without score (default white).
	- ocean       the color of the ocean (default #d3d3d3).
	- interval    the time between two years of an animation (default 1s).
	- start       the first year of an animation (default "1993").
	- object      the TopoJSON object with the countries (default "world").
	- id-property the geometry property used as country ID.

Colors can be defined as hex strings ("#a50026" or "#fff"), RGB triplets
("165,0,38"), or by name ("black", "gray", or "white").

Here is an example file:

	# pressmap settings
	palette: ["#006837", "#66bd63", "#fee08b", "#f46d43", "#a50026"]
	domain: [0, 100]
	missing: white
	interval: 500ms
	start: "2002"

In a PressMap project, the file with the settings is indicated with the
"settings" keyword.
	`,
}
