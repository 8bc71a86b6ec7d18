package document

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// documentArchiveTTL bounds how long an archived document stays downloadable.
const documentArchiveTTL = 30 * 24 * time.Hour

// ArchiveDistributor stores rendered documents in Redis, keyed by booking and
// kind, where the download endpoint of the customer portal picks them up.
type ArchiveDistributor struct {
	Client *redis.Client
	Logger *zap.Logger
}

// NewArchiveDistributor constructs an ArchiveDistributor.
func NewArchiveDistributor(client *redis.Client, logger *zap.Logger) *ArchiveDistributor {
	return &ArchiveDistributor{
		Client: client,
		Logger: logger,
	}
}

// Distribute archives the rendered document.
func (d *ArchiveDistributor) Distribute(ctx context.Context, bookingID, kind string, doc []byte) error {
	key := fmt.Sprintf("documents:%s:%s", bookingID, kind)
	if err := d.Client.Set(ctx, key, doc, documentArchiveTTL).Err(); err != nil {
		return fmt.Errorf("failed to archive %s for booking %s: %w", kind, bookingID, err)
	}
	d.Logger.Debug("document archived",
		zap.String("booking_id", bookingID),
		zap.String("kind", kind),
		zap.Int("bytes", len(doc)))
	return nil
}
