package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/streamcount/internal"
	"github.com/zhengshuai-xiao/streamcount/pkg/ledger"
)

func cmdHistory() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show counts recorded in redis for a source",
		ArgsUsage: "[SOURCE]",
		Description: `
			SOURCE is a URL or s3://bucket/object as printed by --verbose. It defaults to
			the URL the count command downloads without arguments.

			Examples:
			$ streamcount --redis-addr 127.0.0.1:6379/1 history -n 5
			$ streamcount --redis-addr 127.0.0.1:6379/1 history --follow`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 10, Usage: "number of records to show"},
			&cli.BoolFlag{Name: "follow", Aliases: []string{"f"}, Usage: "keep printing new results from every source"},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("redis-addr")
			if addr == "" {
				return errors.New("history needs --redis-addr or STREAMCOUNT_REDIS")
			}
			l, err := ledger.Open(c.Context, addr, c.Int("history-limit"))
			if err != nil {
				return err
			}
			defer l.Close()

			w := c.App.Writer
			if c.Bool("follow") {
				return l.Watch(c.Context, func(rec ledger.Record) {
					printRecord(w, rec)
				})
			}

			source := internal.DefaultURL
			if c.Args().Len() > 0 {
				source = c.Args().First()
			}
			recs, err := l.History(c.Context, source, c.Int("n"))
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintf(w, "no results recorded for %s\n", source)
				return nil
			}
			for _, rec := range recs {
				printRecord(w, rec)
			}
			return nil
		},
	}
}

func printRecord(w io.Writer, rec ledger.Record) {
	fmt.Fprintf(w, "%s  %12d  %6d chunks  %10s  %s",
		rec.Started.Local().Format(time.DateTime),
		rec.Bytes,
		rec.Chunks,
		rec.Elapsed.Round(time.Millisecond),
		rec.Source)
	if rec.SHA256 != "" {
		fmt.Fprintf(w, "  sha256:%s", rec.SHA256)
	}
	fmt.Fprintln(w)
}
