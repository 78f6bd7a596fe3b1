package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/api"
	"github.com/rdj5415/a2e-quant-pipeline/config"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/engine"
	"github.com/rdj5415/a2e-quant-pipeline/logging"
	"github.com/rdj5415/a2e-quant-pipeline/report"
	"github.com/rdj5415/a2e-quant-pipeline/statistics"
	"github.com/rdj5415/a2e-quant-pipeline/store"
	"github.com/rdj5415/a2e-quant-pipeline/strategies"
)

func main() {
	app := &cli.App{
		Name:  "a2e",
		Usage: "backtest trading strategies against historical OHLCV data",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "also write logs to this file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a backtest described by a config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "path to the run configuration file",
						Required: true,
					},
				},
				Action: runBacktest,
			},
			{
				Name:  "serve",
				Usage: "serve backtests over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Value: ":8080",
						Usage: "listen address",
					},
				},
				Action: serveAPI,
			},
			{
				Name:  "runs",
				Usage: "list stored backtest runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "path to the run database",
						Required: true,
					},
				},
				Action: listRuns,
			},
			{
				Name:  "report",
				Usage: "re-render the report of a stored run",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "path to the run database",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "run ID to render",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Value: "reports",
						Usage: "report output directory",
					},
				},
				Action: reportRun,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if logPath := c.String("log-file"); logPath != "" {
		return logging.NewWithFile(logPath, c.Bool("verbose"))
	}
	return logging.New(c.Bool("verbose"))
}

func runBacktest(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stdout sync failure is unactionable

	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}

	bars, err := data.LoadCSV(cfg.DataFile)
	if err != nil {
		return err
	}
	logger.Info("loaded market data",
		zap.String("file", cfg.DataFile),
		zap.Int("bars", len(bars)),
	)

	strat, err := strategies.LoadStrategyByName(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.EngineSettings(), logger)
	if err != nil {
		return err
	}
	runner, err := strategies.NewRunner(eng, strat, decimal.NewFromFloat(cfg.Strategy.OrderSize), logger)
	if err != nil {
		return err
	}
	if err = runner.Run(data.NewBarStream(bars)); err != nil {
		return err
	}

	summary := eng.Summary()
	rep, err := report.New(cfg.RunName, strat.Name(), &summary)
	if err != nil {
		return err
	}
	path, err := rep.Write(cfg.ReportDir)
	if err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", path))

	if cfg.DatabasePath != "" {
		db, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		runID, err := db.SaveRun(context.Background(), cfg.RunName, strat.Name(),
			summary.Metrics, summary.Trades, summary.EquityCurve)
		if err != nil {
			return err
		}
		logger.Info("run stored", zap.Int64("run_id", runID))
	}

	printMetrics(&summary)
	return nil
}

func serveAPI(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stdout sync failure is unactionable
	return api.NewServer(c.String("addr"), logger).ListenAndServe()
}

func listRuns(c *cli.Context) error {
	db, err := store.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTRATEGY\tCREATED\tRETURN\tSHARPE\tDRAWDOWN\tWIN RATE\tTRADES")
	for i := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t%d\n",
			runs[i].ID, runs[i].Name, runs[i].Strategy,
			runs[i].CreatedAt.Format("2006-01-02 15:04:05"),
			runs[i].TotalReturn, runs[i].SharpeRatio,
			runs[i].MaxDrawdown, runs[i].WinRate, runs[i].TotalTrades)
	}
	return w.Flush()
}

func reportRun(c *cli.Context) error {
	db, err := store.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	runID := c.Int64("id")
	run, err := db.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	trades, err := db.LoadTrades(ctx, runID)
	if err != nil {
		return err
	}
	curve, err := db.LoadEquityCurve(ctx, runID)
	if err != nil {
		return err
	}

	summary := engine.Summary{
		Metrics: statistics.Results{
			TotalReturn: run.TotalReturn,
			SharpeRatio: run.SharpeRatio,
			MaxDrawdown: run.MaxDrawdown,
			WinRate:     run.WinRate,
			TotalTrades: run.TotalTrades,
		},
		Trades:      trades,
		EquityCurve: curve,
	}
	// stored runs keep the equity curve, not the cash balance; the
	// final sample stands in and matches cash exactly when flat
	if len(curve) > 0 {
		summary.FinalCapital = curve[len(curve)-1].Equity
	}
	rep, err := report.New(run.Name, run.Strategy, &summary)
	if err != nil {
		return err
	}
	path, err := rep.Write(c.String("out"))
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func printMetrics(s *engine.Summary) {
	fmt.Printf("Total return:\t%.4f\n", s.Metrics.TotalReturn)
	fmt.Printf("Sharpe ratio:\t%.4f\n", s.Metrics.SharpeRatio)
	fmt.Printf("Max drawdown:\t%.4f\n", s.Metrics.MaxDrawdown)
	fmt.Printf("Win rate:\t%.4f\n", s.Metrics.WinRate)
	fmt.Printf("Total trades:\t%d\n", s.Metrics.TotalTrades)
	fmt.Printf("Final capital:\t%s\n", s.FinalCapital)
}
