package jobs

import (
	"context"
	"time"

	"cleanhub/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// Locker is a lease shared by every replica running the scheduler.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string)
}

type valkeyLocker struct {
	client valkey.Client
	owner  string
	log    logger.Logger
}

func NewValkeyLocker(client valkey.Client) Locker {
	return &valkeyLocker{
		client: client,
		owner:  uuid.New().String(),
		log:    logger.New("valkeyLocker"),
	}
}

func (l *valkeyLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return database.NewCacheBuilder(l.client, key).
		WithContext(ctx).
		WithStruct(l.owner).
		WithTTL(ttl).
		SetNX()
}

// Release deletes the key only while this replica still owns it.
func (l *valkeyLocker) Release(ctx context.Context, key string) {
	var owner string
	found, err := database.NewCacheBuilder(l.client, key).WithContext(ctx).Get(&owner)
	if err != nil || !found || owner != l.owner {
		return
	}

	if err := database.NewCacheBuilder(l.client, key).WithContext(ctx).Delete(); err != nil {
		l.log.Function("Release").Warn("failed to release lock", "key", key, "error", err)
	}
}
