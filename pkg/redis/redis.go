package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ProximityGuard/internal/entity"
)

const recentAlertsKey = "proximity:recent_alerts"

// IRedis keeps a capped list of the most recent alerts so the status UI can
// show them without touching Postgres.
type IRedis interface {
	PushRecentAlert(ctx context.Context, alert entity.Alert, max int64) error
	GetRecentAlerts(ctx context.Context, count int64) ([]entity.Alert, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) PushRecentAlert(ctx context.Context, alert entity.Alert, max int64) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, recentAlertsKey, payload)
	pipe.LTrim(ctx, recentAlertsKey, 0, max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Error(fmt.Sprintf("Error pushing recent alert: %v", err))
		return err
	}

	return nil
}

func (r *redisClient) GetRecentAlerts(ctx context.Context, count int64) ([]entity.Alert, error) {
	raw, err := r.client.LRange(ctx, recentAlertsKey, 0, count-1).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error reading recent alerts: %v", err))
		return nil, err
	}

	alerts := make([]entity.Alert, 0, len(raw))
	for _, item := range raw {
		var alert entity.Alert
		if err := json.Unmarshal([]byte(item), &alert); err != nil {
			continue
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}
