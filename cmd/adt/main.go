// Command adt runs scenario files against the containers of this module: a
// dense array-backed map, a list built on that map, and a set and a bag built
// on those.
package main

import (
	"os"

	"src.elv.sh/adt/pkg/buildinfo"
	"src.elv.sh/adt/pkg/prog"
	"src.elv.sh/adt/pkg/scenario"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &scenario.Program{})))
}
