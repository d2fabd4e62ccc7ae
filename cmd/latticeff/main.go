// Command latticeff turns a crystallographic description of a periodic
// material into a LAMMPS data file and a matching control script.
//
// Argument parsing and the top-level command template follow the
// teacher's poly/main.go: a *cli.App built by application(), kept
// separate from main() and run() so tests can build the app and run it
// directly with arbitrary args.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines latticeff's single-command CLI: no subcommands,
// since (unlike the teacher's multi-verb poly) there's exactly one
// thing to do — read a crystallographic file, assemble the topology,
// and write the two LAMMPS files.
func application() *cli.App {
	return &cli.App{
		Name:      "latticeff",
		Usage:     "Generate a LAMMPS UFF/DREIDING topology from a crystallographic structure.",
		ArgsUsage: "<input.cif>",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "forcefield",
				Value: "uff",
				Usage: "Force field to parameterize with: uff, dreiding, or hybrid (framework UFF, guest molecules DREIDING).",
			},
			&cli.Float64Flag{
				Name:  "cutoff",
				Value: 12.5,
				Usage: "Non-bonded interaction cutoff (angstrom), used both to size the minimum supercell and as the pair style's real-space cutoff.",
			},
			&cli.BoolFlag{
				Name:  "split-molecules",
				Value: true,
				Usage: "Carve small connected components out of the framework as guest molecules before typing.",
			},
			&cli.BoolFlag{
				Name:  "hydrogen-bonding",
				Value: false,
				Usage: "Enable DREIDING's explicit hydrogen-bond retyping and pair term.",
			},
			&cli.BoolFlag{
				Name:  "debug-cif",
				Value: false,
				Usage: "Print the tags of each data block in the input file before assembling; the data and control files are still written.",
			},
			&cli.StringFlag{
				Name:  "out",
				Value: "",
				Usage: "Output basename; writes <out>.data and <out>.in. Defaults to the input file's basename.",
			},
		},

		Action: func(c *cli.Context) error {
			return assembleCommand(c)
		},
	}
}
