package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
)

// WarrantySweepJob is the registered name of the warranty expiry sweep.
const WarrantySweepJob = "warranty-expiry-sweep"

// Sweeper persists the expired status of lapsed warranty records.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// WarrantySweep returns a job that expires lapsed warranties as of now().
func WarrantySweep(sweeper Sweeper, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) error {
		n, err := sweeper.SweepExpired(ctx, now())
		if err != nil {
			return err
		}
		if n > 0 {
			observability.FromContext(ctx).Info("warranty records expired", zap.Int("count", n))
		}
		return nil
	}
}
