package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const (
	expiration = 5 * time.Minute

	// walletUpdatedChannel carries invalidation pushes from the worker to
	// every API instance, which fan them out to WebSocket subscribers.
	walletUpdatedChannel = "wallet:updated"
)

var (
	ErrBalanceNotFound = errors.New("balance not found in cache")
)

type WalletRepository struct {
	client *redis.Client
	prefix string
}

func NewWalletRepository(client *redis.Client) *WalletRepository {
	return &WalletRepository{
		client: client,
		prefix: "wallet:",
	}
}

func (r *WalletRepository) SetBalance(ctx context.Context, walletID string, balance decimal.Decimal) error {
	key := r.getBalanceKey(walletID)

	err := r.client.Set(ctx, key, balance.String(), expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set balance in redis: %w", err)
	}

	return nil
}

func (r *WalletRepository) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	key := r.getBalanceKey(walletID)

	balanceStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, ErrBalanceNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance from redis: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance from redis: %w", err)
	}

	return balance, nil
}

func (r *WalletRepository) DeleteBalance(ctx context.Context, walletID string) error {
	key := r.getBalanceKey(walletID)

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete balance from redis: %w", err)
	}

	return nil
}

// PublishWalletUpdated notifies subscribers that a wallet changed and
// should be refetched. The message is just the wallet id.
func (r *WalletRepository) PublishWalletUpdated(ctx context.Context, walletID string) error {
	err := r.client.Publish(ctx, walletUpdatedChannel, walletID).Err()
	if err != nil {
		return fmt.Errorf("failed to publish wallet update: %w", err)
	}

	return nil
}

// SubscribeWalletUpdated subscribes to the invalidation channel. The caller
// owns the returned PubSub and must Close it.
func (r *WalletRepository) SubscribeWalletUpdated(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, walletUpdatedChannel)
}

func (r *WalletRepository) getBalanceKey(walletID string) string {
	return r.prefix + walletID + ":balance"
}
