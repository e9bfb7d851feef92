// xivcost looks up market prices and recipe craft costs from the terminal.
//
// Usage:
//
//	xivcost search 青銅
//	xivcost cost 5057 --world Gungnir --depth 2
//	xivcost price 5057,5058 --world Gungnir
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "xivcost",
		Usage:   "Market prices and recipe craft costs",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagWorld,
				Aliases: []string{"w"},
				Usage:   "World to price on (defaults to DEFAULT_SERVER)",
				EnvVars: []string{"XIVCOST_WORLD"},
			},
			&cli.StringFlag{
				Name:    flagDatacenter,
				Usage:   "Datacenter for world listings (defaults to DEFAULT_DATACENTER)",
				EnvVars: []string{"XIVCOST_DATACENTER"},
			},
			&cli.StringFlag{
				Name:    flagLang,
				Aliases: []string{"l"},
				Usage:   "Display language (auto, en, ja, de, fr)",
				EnvVars: []string{"XIVCOST_LANG"},
			},
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "Print JSON instead of a table",
			},
			&cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Usage:   "Also write the JSON result to this file",
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"XIVCOST_LOG_LEVEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			searchCommand(),
			priceCommand(),
			overviewCommand(),
			costCommand(),
			datacentersCommand(),
			worldsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
