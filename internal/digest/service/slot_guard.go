package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-digest/pkg/common"

	"github.com/redis/go-redis/v9"
)

// SlotGuard records that a user was handled in a scheduling slot.
type SlotGuard interface {
	// Claim returns false when the user already holds a claim for slot.
	Claim(ctx context.Context, userID string, slot Slot) (bool, error)
	Release(ctx context.Context, userID string, slot Slot) error
}

const slotClaimTTL = 2 * time.Hour

// NewRedisSlotGuard creates a SlotGuard that stores claims in Redis.
func NewRedisSlotGuard(client *redis.Client) SlotGuard {
	return &redisSlotGuard{client: client}
}

type redisSlotGuard struct {
	client *redis.Client
}

func slotKey(userID string, slot Slot) string {
	return fmt.Sprintf("%s:%s:%s", common.RedisKeyDigestSlot, userID, slot.Key())
}

func (g *redisSlotGuard) Claim(ctx context.Context, userID string, slot Slot) (bool, error) {
	ok, err := g.client.SetNX(ctx, slotKey(userID, slot), time.Now().UTC().Format(time.RFC3339), slotClaimTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim digest slot: %w", err)
	}
	return ok, nil
}

func (g *redisSlotGuard) Release(ctx context.Context, userID string, slot Slot) error {
	if err := g.client.Del(ctx, slotKey(userID, slot)).Err(); err != nil {
		return fmt.Errorf("failed to release digest slot: %w", err)
	}
	return nil
}

type nopSlotGuard struct{}

// NewNopSlotGuard returns a SlotGuard that always grants the claim.
func NewNopSlotGuard() SlotGuard {
	return nopSlotGuard{}
}

func (nopSlotGuard) Claim(context.Context, string, Slot) (bool, error) { return true, nil }

func (nopSlotGuard) Release(context.Context, string, Slot) error { return nil }
