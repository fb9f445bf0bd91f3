// Package express compiles a dataset and a flat set of column arguments
// into a plotly.js figure: traces, one merged layout and animation frames.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/express/engine"
//	    "github.com/spektr-org/express/helpers"
//	)
//
//	view, _, err := helpers.LoadCSV("gapminder.csv")
//	fig, err := engine.Build("scatter", view, engine.Args{
//	    X: "gdp", Y: "life_exp", Color: "continent",
//	    AnimationFrame: "year", LogX: true,
//	})
//	json.NewEncoder(os.Stdout).Encode(fig)
//
// The engine reads rows through engine.RecordView (a go-gg table, a
// []Record slice, or any struct slice via DomainAdapter) and never renders.
// The schema package discovers column kinds and suggests arguments;
// cmd/express wraps both behind a command line.
package express
