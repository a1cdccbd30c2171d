package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/diabetect-backend/internal/config"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/types"
)

const (
	predictionPrefix = "prediction:"
	metricsKey       = "metrics:response"
)

// PredictionCache memoizes prediction results and the /metrics document in
// Redis. Caching is strictly best-effort: an unreachable store makes every
// lookup a miss and every write a no-op, and the request proceeds without
// it. A nil client disables caching entirely.
type PredictionCache struct {
	log           *logger.Logger
	rdb           *goredis.Client
	predictionTTL time.Duration
	metricsTTL    time.Duration
}

// NewClient dials Redis per config, failing soft: when the address is empty
// or the ping fails the returned client is nil and the cache degrades to
// no-op.
func NewClient(cfg config.RedisConfig, log *logger.Logger) *goredis.Client {
	if strings.TrimSpace(cfg.Addr) == "" {
		log.Info("No REDIS_ADDR configured, response cache disabled")
		return nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, response cache disabled", "error", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func New(rdb *goredis.Client, log *logger.Logger, predictionTTL, metricsTTL time.Duration) *PredictionCache {
	return &PredictionCache{
		log:           log.With("service", "PredictionCache"),
		rdb:           rdb,
		predictionTTL: predictionTTL,
		metricsTTL:    metricsTTL,
	}
}

// PredictionKey canonicalizes the four user-facing inputs into a cache key.
// Values are rounded to two decimals so near-identical floats share an
// entry; absent fields are marked so they never collide with zeros.
func PredictionKey(glucose, insulin, bmi, age *float64) string {
	return predictionPrefix + strings.Join([]string{
		"g=" + canonical(glucose),
		"i=" + canonical(insulin),
		"b=" + canonical(bmi),
		"a=" + canonical(age),
	}, ":")
}

func canonical(v *float64) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%.2f", *v)
}

// GetPrediction returns the cached result for key, or (nil, false) on miss
// or any store error.
func (c *PredictionCache) GetPrediction(ctx context.Context, key string) (*types.PredictionResult, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Cache lookup failed, treating as miss", "error", err)
		}
		return nil, false
	}
	var res types.PredictionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Debug("Cached prediction undecodable, treating as miss", "error", err)
		return nil, false
	}
	return &res, true
}

// SetPrediction stores a result under key with the prediction TTL.
func (c *PredictionCache) SetPrediction(ctx context.Context, key string, res *types.PredictionResult) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.predictionTTL).Err(); err != nil {
		c.log.Debug("Cache store failed, skipping", "error", err)
	}
}

// GetMetrics returns the cached /metrics body, or (nil, false) on miss.
func (c *PredictionCache) GetMetrics(ctx context.Context) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, metricsKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Metrics cache lookup failed, treating as miss", "error", err)
		}
		return nil, false
	}
	return raw, true
}

// SetMetrics stores the /metrics body with the metrics TTL. Entries expire
// naturally; there is no active invalidation on retraining.
func (c *PredictionCache) SetMetrics(ctx context.Context, body []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, metricsKey, body, c.metricsTTL).Err(); err != nil {
		c.log.Debug("Metrics cache store failed, skipping", "error", err)
	}
}
