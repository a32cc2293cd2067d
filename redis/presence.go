package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"wayfindr-map/config"
	"wayfindr-map/models"
)

const presenceKeyPrefix = "robot:presence:"

// PresenceTracker records robot navigation polls in Redis. Each snapshot
// request touches robot:presence:<id> with the robot's floor and timestamp;
// entries fall out on their own once the robot stops polling past the
// presence window.
type PresenceTracker struct {
	client *redis.Client
	ctx    context.Context
	window time.Duration
}

// NewPresenceTracker connects to Redis and verifies the connection.
func NewPresenceTracker(cfg *config.Config) (*PresenceTracker, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &PresenceTracker{
		client: rdb,
		ctx:    ctx,
		window: cfg.PresenceWindow,
	}, nil
}

// Touch records that a robot polled navigation state for a floor just now.
func (p *PresenceTracker) Touch(robotID, floorID string) error {
	presence := models.RobotPresence{
		RobotID:  robotID,
		FloorID:  floorID,
		LastSeen: time.Now(),
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %w", err)
	}

	key := presenceKeyPrefix + robotID
	if err := p.client.Set(p.ctx, key, data, p.window).Err(); err != nil {
		return fmt.Errorf("failed to save presence to Redis: %w", err)
	}
	return nil
}

// Get returns a robot's last recorded poll, or nil if it has not been seen
// within the presence window.
func (p *PresenceTracker) Get(robotID string) (*models.RobotPresence, error) {
	val, err := p.client.Get(p.ctx, presenceKeyPrefix+robotID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get presence from Redis: %w", err)
	}

	var presence models.RobotPresence
	if err := json.Unmarshal([]byte(val), &presence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presence: %w", err)
	}
	return &presence, nil
}

// IsOnline reports whether a robot polled within the presence window.
func (p *PresenceTracker) IsOnline(robotID string) bool {
	presence, err := p.Get(robotID)
	return err == nil && presence != nil
}

// ListOnline returns every robot seen within the presence window, ordered by
// robot id. The key count is bounded by the fleet size, so a single KEYS
// scan is fine here.
func (p *PresenceTracker) ListOnline() ([]models.RobotPresence, error) {
	keys, err := p.client.Keys(p.ctx, presenceKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presence keys: %w", err)
	}

	robots := make([]models.RobotPresence, 0, len(keys))
	for _, key := range keys {
		val, err := p.client.Get(p.ctx, key).Result()
		if err == redis.Nil {
			continue // expired between KEYS and GET
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get presence from Redis: %w", err)
		}
		var presence models.RobotPresence
		if err := json.Unmarshal([]byte(val), &presence); err != nil {
			return nil, fmt.Errorf("failed to unmarshal presence: %w", err)
		}
		robots = append(robots, presence)
	}
	sort.Slice(robots, func(i, j int) bool { return robots[i].RobotID < robots[j].RobotID })
	return robots, nil
}

// Close releases the Redis connection.
func (p *PresenceTracker) Close() error {
	return p.client.Close()
}
