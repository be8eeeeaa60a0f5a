package cv

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/errors"
)

// Open builds the store selected by cfg.CVStore. For redis it also pings
// the server so that a bad address fails at startup. The returned close
// function releases backend connections.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	nop := func() error { return nil }
	sc := cfg.CVStore

	switch sc.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(), nop, nil

	case config.BackendFile:
		s, err := NewFileStore(sc.File.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nop, nil

	case config.BackendS3:
		client, err := NewS3Client(ctx, sc.S3.Region, sc.S3.Endpoint)
		if err != nil {
			return nil, nil, errors.New("D300").WithField("cvStore.s3").Wrap(err)
		}
		credCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := client.Options().Credentials.Retrieve(credCtx); err != nil {
			return nil, nil, errors.New("D300").
				WithField("cvStore.s3").
				WithDetail("No AWS credentials found").
				Wrap(err)
		}
		return NewS3Store(client, sc.S3.Bucket, sc.S3.Prefix), nop, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, errors.New("D300").WithField("cvStore.redis.addr").Wrap(err)
		}
		s := NewRedisStore(client,
			WithRedisPrefix(sc.Redis.Prefix),
			WithRedisTTL(cfg.Duration("cvStore.redis.ttl")),
		)
		return s, client.Close, nil
	}
	return nil, nil, errors.New("D303").
		WithField("cvStore.backend").
		WithDetail("Got " + strconv.Quote(sc.Backend))
}
