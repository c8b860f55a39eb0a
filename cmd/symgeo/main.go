// Command symgeo derives exact attributes of lines and conic sections from
// the command line, or serves the same computations over HTTP.
package main

import "github.com/njchilds90/symgeo/internal/cli"

func main() {
	cli.Execute()
}
