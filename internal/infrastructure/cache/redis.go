package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const connectAttempts = 3

// ConnectRedis dials REDIS_ADDRESS. It returns a nil client when the variable
// is unset; callers then run without the distributed lock.
func ConnectRedis(ctx context.Context, log logrus.FieldLogger) (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		log.Info("REDIS_ADDRESS not set; order locking disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.WithFields(logrus.Fields{"addr": addr, "attempt": attempt}).Info("connected to redis")
			return rdb, nil
		}
		sleep := time.Second * time.Duration(1<<attempt)
		log.WithFields(logrus.Fields{"addr": addr, "attempt": attempt}).WithError(err).Warnf("failed to connect redis; retrying in %s", sleep)
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
	_ = rdb.Close()
	return nil, err
}
