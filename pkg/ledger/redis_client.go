package ledger

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

// parseRedisOptions turns "host:port[/db]" into client options. A comma-separated
// host list means cluster mode; "master,sentinel1:port,..." means sentinel mode.
func parseRedisOptions(addr string) (*redis.UniversalOptions, error) {
	uri := addr
	if !strings.Contains(uri, "://") {
		uri = "redis://" + addr
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address format: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid redis address %q: missing host", addr)
	}

	db := 0
	if p := strings.Trim(u.Path, "/"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &db); err != nil {
			return nil, fmt.Errorf("invalid redis db %q: %w", p, err)
		}
	}

	password, _ := u.User.Password()
	if password == "" {
		password = os.Getenv("REDIS_PASSWORD")
	}

	opts := &redis.UniversalOptions{
		Addrs:        strings.Split(u.Host, ","),
		DB:           db,
		Username:     u.User.Username(),
		Password:     password,
		DialTimeout:  internal.GlobalRedisTimeout,
		ReadTimeout:  internal.GlobalRedisTimeout,
		WriteTimeout: internal.GlobalRedisTimeout,
	}

	hosts := opts.Addrs
	if len(hosts) > 1 && !strings.Contains(hosts[0], ":") {
		opts.MasterName = hosts[0]
		opts.Addrs = hosts[1:]
	}
	return opts, nil
}

// newUniversalRedisClient connects to a single node, a cluster or a sentinel setup
// and pings it.
func newUniversalRedisClient(ctx context.Context, addr string) (redis.UniversalClient, error) {
	opts, err := parseRedisOptions(addr)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.MasterName != "":
		logger.Infof("Connecting to Redis in Sentinel mode. Master: %s, Sentinels: %v", opts.MasterName, opts.Addrs)
	case len(opts.Addrs) > 1:
		logger.Infof("Connecting to Redis in Cluster mode. Nodes: %v", opts.Addrs)
	default:
		logger.Infof("Connecting to Redis in Single-node mode. Address: %s", opts.Addrs[0])
	}

	rdb := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(ctx, internal.GlobalRedisTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}
