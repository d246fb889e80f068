package cmd

import (
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "loglevel",
			Usage: "log level: trace/debug/info/warn/error",
			Value: "warn",
		},
		&cli.StringFlag{
			Name:  "logfile",
			Usage: "write logs to this file (rotated daily) instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors in log output",
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "record results in redis at host:port[/db]; empty disables the history",
			EnvVars: []string{"STREAMCOUNT_REDIS"},
		},
		&cli.IntFlag{
			Name:  "history-limit",
			Usage: "number of results kept per source in redis",
			Value: internal.DefaultHistoryLimit,
		},
	}
}

func countFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "chunk-method",
			Usage: "how the body is pulled: read (one read per chunk) or fixed (fixed-size chunks)",
			Value: "read",
		},
		&cli.StringFlag{
			Name:  "chunk-size",
			Usage: "read buffer / chunk size, e.g. 32KiB or 1MiB",
			Value: "32KiB",
		},
		&cli.StringFlag{
			Name:  "decode",
			Usage: "decode the body before counting: none/gzip/zlib/snappy",
			Value: "none",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "abort the whole download after this long; 0 disables",
			Value: internal.GlobalFetchTimeout,
		},
		&cli.BoolFlag{
			Name:  "digest",
			Usage: "compute the sha256 of the body",
		},
		&cli.BoolFlag{
			Name:  "crc32",
			Usage: "compute the CRC-32 (IEEE) of the body",
		},
		&cli.BoolFlag{
			Name:  "retain",
			Usage: "keep all chunks in memory and count the concatenated buffer",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "print size, time taken and throughput after the count",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "report bytes received on stderr while downloading",
		},
	}
}

func expandFlags(compoundFlags ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, fs := range compoundFlags {
		flags = append(flags, fs...)
	}
	return flags
}

func configFromFlags(c *cli.Context) (*internal.Config, error) {
	conf := internal.NewConfig()
	size, err := internal.ParseSize(c.String("chunk-size"))
	if err != nil {
		return nil, err
	}
	conf.ChunkMethod = c.String("chunk-method")
	conf.ChunkSize = size
	conf.Decode = c.String("decode")
	conf.Timeout = c.Duration("timeout")
	conf.Digest = c.Bool("digest")
	conf.Checksum = c.Bool("crc32")
	conf.Retain = c.Bool("retain")
	conf.Verbose = c.Bool("verbose")
	conf.Progress = c.Bool("progress")
	conf.AllowAnyStatus = c.Bool("any-status")
	conf.RedisAddr = c.String("redis-addr")
	conf.HistoryLimit = c.Int("history-limit")
	return conf, conf.Validate()
}
