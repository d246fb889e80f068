package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/streamcount/internal"
	"github.com/zhengshuai-xiao/streamcount/pkg/fetch"
	"github.com/zhengshuai-xiao/streamcount/pkg/ledger"
)

func cmdCount() *cli.Command {
	selfFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Usage:   "URL to download (the first argument takes precedence)",
			Value:   internal.DefaultURL,
			EnvVars: []string{"STREAMCOUNT_URL"},
		},
		&cli.BoolFlag{
			Name:  "any-status",
			Usage: "count the body of non-2xx responses instead of failing",
		},
	}

	return &cli.Command{
		Name:      "count",
		Usage:     "GET a URL and print the number of bytes in the response body",
		ArgsUsage: "[URL]",
		Description: `
			Without a URL the NOAA 24h snowfall grid of 2022-02-01 is downloaded.

			Examples:
			$ streamcount count
			$ streamcount count --digest --verbose https://example.com/data.bin`,
		Flags: expandFlags(selfFlags, countFlags()),
		Action: func(c *cli.Context) error {
			url := c.String("url")
			if c.Args().Len() > 0 {
				url = c.Args().First()
			}
			src := fetch.NewHTTPSource(url)
			src.AllowAnyStatus = c.Bool("any-status")
			return runCount(c, src)
		},
	}
}

func cmdS3() *cli.Command {
	selfFlags := []cli.Flag{
		&cli.StringFlag{Name: "endpoint", Usage: "S3 server endpoint (must include http:// or https://); empty for AWS"},
		&cli.StringFlag{Name: "region", Value: "us-east-1", Usage: "S3 region", EnvVars: []string{"AWS_REGION"}},
		&cli.StringFlag{Name: "access-key", Usage: "S3 access key; anonymous when empty", EnvVars: []string{"AWS_ACCESS_KEY_ID"}},
		&cli.StringFlag{Name: "secret-key", Usage: "S3 secret key", EnvVars: []string{"AWS_SECRET_ACCESS_KEY"}},
		&cli.StringFlag{Name: "bucket", Required: true, Usage: "bucket name"},
		&cli.StringFlag{Name: "object-name", Required: true, Usage: "object key"},
	}

	return &cli.Command{
		Name:  "s3",
		Usage: "Count the bytes of an object using the AWS SDK",
		Flags: expandFlags(selfFlags, countFlags()),
		Action: func(c *cli.Context) error {
			return runCount(c, &fetch.S3Source{
				Endpoint:  c.String("endpoint"),
				Region:    c.String("region"),
				AccessKey: c.String("access-key"),
				SecretKey: c.String("secret-key"),
				Bucket:    c.String("bucket"),
				Key:       c.String("object-name"),
			})
		},
	}
}

func cmdMinio() *cli.Command {
	selfFlags := []cli.Flag{
		&cli.StringFlag{Name: "endpoint", Value: "localhost:9000", Usage: "MinIO server endpoint", EnvVars: []string{"MINIO_ENDPOINT"}},
		&cli.StringFlag{Name: "access-key", Usage: "MinIO access key", EnvVars: []string{"MINIO_ROOT_USER"}},
		&cli.StringFlag{Name: "secret-key", Usage: "MinIO secret key", EnvVars: []string{"MINIO_ROOT_PASSWORD"}},
		&cli.BoolFlag{Name: "ssl", Usage: "Use SSL for connection"},
		&cli.StringFlag{Name: "region", Usage: "bucket region; looked up from the server when empty"},
		&cli.StringFlag{Name: "bucket", Required: true, Usage: "bucket name"},
		&cli.StringFlag{Name: "object-name", Required: true, Usage: "object name"},
	}

	return &cli.Command{
		Name:  "minio",
		Usage: "Count the bytes of an object using the MinIO client",
		Flags: expandFlags(selfFlags, countFlags()),
		Action: func(c *cli.Context) error {
			return runCount(c, &fetch.MinioSource{
				Endpoint:  c.String("endpoint"),
				AccessKey: c.String("access-key"),
				SecretKey: c.String("secret-key"),
				Secure:    c.Bool("ssl"),
				Region:    c.String("region"),
				Bucket:    c.String("bucket"),
				Object:    c.String("object-name"),
			})
		},
	}
}

func runCount(c *cli.Context, src fetch.Source) error {
	conf, err := configFromFlags(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}

	job, err := fetch.NewJob(src, conf)
	if err != nil {
		return err
	}
	if conf.Progress {
		job.Counter.OnChunk = progressReporter(c.App.ErrWriter)
	}

	rep, err := job.Run(ctx)
	if conf.Progress {
		fmt.Fprintln(c.App.ErrWriter)
	}
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", src, err)
	}

	w := c.App.Writer
	fmt.Fprintln(w, rep.Bytes)
	if conf.Verbose {
		printSummary(w, rep)
	}

	if conf.RedisAddr != "" {
		record(ctx, conf, rep)
	}
	return nil
}

func printSummary(w io.Writer, rep *fetch.Report) {
	fmt.Fprintf(w, "  Source:     %s\n", rep.Source)
	fmt.Fprintf(w, "  Size:       %s\n", internal.FormatBytes(rep.Bytes))
	if rep.Advertised >= 0 {
		fmt.Fprintf(w, "  Advertised: %d bytes\n", rep.Advertised)
	}
	fmt.Fprintf(w, "  Chunks:     %d\n", rep.Chunks)
	fmt.Fprintf(w, "  Time taken: %s\n", rep.Elapsed)
	fmt.Fprintf(w, "  Throughput: %.2f MB/s\n", internal.Throughput(rep.Bytes, rep.Elapsed.Seconds()))
	if rep.SHA256 != "" {
		fmt.Fprintf(w, "  SHA256:     %s\n", rep.SHA256)
	}
	if rep.CRC32 != 0 {
		fmt.Fprintf(w, "  CRC32:      %08x\n", rep.CRC32)
	}
	if rep.Data != nil {
		fmt.Fprintf(w, "  Retained:   %d bytes\n", len(rep.Data))
	}
}

// record saves rep in the redis history. The count has already been printed,
// so a failure here is only logged.
func record(ctx context.Context, conf *internal.Config, rep *fetch.Report) {
	l, err := ledger.Open(ctx, conf.RedisAddr, conf.HistoryLimit)
	if err != nil {
		logger.Warnf("result not recorded: %v", err)
		return
	}
	defer l.Close()
	if err := l.Save(ctx, ledger.NewRecord(rep)); err != nil {
		logger.Warnf("result not recorded: %v", err)
	}
}

// progressReporter writes the running total at most once per second.
func progressReporter(w io.Writer) func(total int64) {
	var last time.Time
	return func(total int64) {
		if time.Since(last) < time.Second {
			return
		}
		last = time.Now()
		fmt.Fprintf(w, "\r%s received", humanize.IBytes(uint64(total)))
	}
}
