package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/internal/analyze"
	dbactions "github.com/campusmetrics/cataloglens/internal/db"
	"github.com/campusmetrics/cataloglens/internal/ingest"
	"github.com/campusmetrics/cataloglens/internal/report"
	"github.com/campusmetrics/cataloglens/internal/run"
)

func main() {
	app := &cli.App{
		Name:  "cataloglens",
		Usage: "compare text metrics across course catalog departments",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "load catalog records from a directory of .txt/.html files or a CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Usage:    "input directory or CSV file (CSV header: department,title,text)",
						Required: true,
					},
					dbFlag(),
					quietFlag(),
				},
				Action: ingest.IngestAction,
			},
			{
				Name:  "analyze",
				Usage: "compute per-document metrics and aggregate them by department",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "results",
						Usage: "directory for summary.yaml",
					},
					&cli.StringFlag{
						Name:  "stopwords",
						Usage: "extra stopword file, one word per line",
					},
					topKFlag(),
					dbFlag(),
					quietFlag(),
				},
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "report",
				Usage: "render comparative charts from a run's aggregates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "results",
						Usage: "directory for chart HTML files",
					},
					&cli.IntFlag{
						Name:  "run",
						Usage: "run ID to render (default: latest)",
					},
					&cli.StringFlag{
						Name:  "words",
						Usage: "comma-separated keyword list for the Sankey (default: top-k corpus words)",
					},
					topKFlag(),
					dbFlag(),
					quietFlag(),
				},
				Action: report.ReportAction,
			},
			{
				Name:  "run",
				Usage: "ingest, analyze and report in one pass",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "input directory or CSV file",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file (flags override its values)",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "output directory for summary and charts",
					},
					&cli.StringFlag{
						Name:  "stopwords",
						Usage: "extra stopword file, one word per line",
					},
					&cli.StringFlag{
						Name:  "words",
						Usage: "comma-separated keyword list for the Sankey",
					},
					topKFlag(),
					dbFlag(),
					quietFlag(),
				},
				Action: run.RunAction,
			},
			{
				Name:  "db",
				Usage: "inspect the document store",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "list analysis runs",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum runs to list",
							},
							dbFlag(),
						},
						Action: dbactions.RunsAction,
					},
					{
						Name:   "stats",
						Usage:  "show document counts by department",
						Flags:  []cli.Flag{dbFlag()},
						Action: dbactions.StatsAction,
					},
					{
						Name:  "summary",
						Usage: "print a run's summary.yaml",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "run",
								Usage: "run ID (default: latest)",
							},
							dbFlag(),
						},
						Action: dbactions.SummaryAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite database path (default: next to the binary)",
	}
}

func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}
}

func topKFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "top-k",
		Value: 10,
		Usage: "number of keywords per department and for the Sankey",
	}
}
