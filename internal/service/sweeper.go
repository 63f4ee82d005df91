package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// DefaultSweepGrace is how long past its deadline a pending reservation
// is left alone before the sweeper expires it.  The grace absorbs
// clock skew and in-flight confirmations.
const DefaultSweepGrace = time.Hour

// SweeperOptions configures a sweep run.
type SweeperOptions struct {
	// Grace is subtracted from now to form the expiry cutoff.  Zero
	// means DefaultSweepGrace.
	Grace time.Duration
	// Force ignores the grace period and expires everything whose
	// deadline has passed.
	Force bool
	// DryRun reports what would be expired without writing anything.
	DryRun bool
}

// SweepReport summarizes one sweeper run.
type SweepReport struct {
	Scanned int // candidates matching the cutoff query
	Expired int // reservations actually expired (or would-be, in dry run)
	Skipped int // no longer pending or no longer overdue when rechecked
	Failed  int // items whose transaction errored; the run continues
	DryRun  bool
}

// Sweeper expires overdue pending reservations and releases their held
// seats.  Each candidate is processed in its own transaction with the
// reservation row locked and its state rechecked, so a confirmation
// racing the sweep is never clobbered, and one failure never aborts the
// whole run.
type Sweeper struct {
	store ports.ReservationStore
	opts  SweeperOptions
	now   func() time.Time
}

// NewSweeper constructs a Sweeper over the store.
func NewSweeper(store ports.ReservationStore, opts SweeperOptions) *Sweeper {
	if opts.Grace <= 0 {
		opts.Grace = DefaultSweepGrace
	}
	return &Sweeper{store: store, opts: opts, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the sweeper clock.  Tests use this to pin time.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run executes one sweep and returns its report.  Only a failure to
// list candidates is a run-level error; per-item failures are counted
// and logged.
func (s *Sweeper) Run(ctx context.Context) (*SweepReport, error) {
	now := s.now()
	cutoff := now
	if !s.opts.Force {
		cutoff = now.Add(-s.opts.Grace)
	}

	ids, err := s.store.ListPendingExpiredBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expired candidates: %w", err)
	}

	report := &SweepReport{Scanned: len(ids), DryRun: s.opts.DryRun}
	for _, id := range ids {
		expired, err := s.sweepOne(ctx, id, cutoff)
		switch {
		case err != nil:
			report.Failed++
			log.Printf("sweeper: reservation %d: %v", id, err)
		case expired:
			report.Expired++
		default:
			report.Skipped++
		}
	}
	return report, nil
}

// sweepOne expires a single candidate under lock.  Returns false when
// the recheck shows the reservation no longer qualifies.
func (s *Sweeper) sweepOne(ctx context.Context, id uint64, cutoff time.Time) (bool, error) {
	expired := false
	err := s.store.InTx(ctx, func(tx ports.ReservationTx) error {
		res, err := tx.ReservationForUpdate(ctx, id)
		if err != nil {
			// Deleted between listing and locking; nothing to do.
			if errors.Is(err, model.ErrNotFound) {
				return nil
			}
			return err
		}
		// Recheck under lock: a confirm or cancel may have won the race.
		// A deadline landing exactly on the cutoff still qualifies.
		if res.Status != model.ReservationPending || res.ExpiresAt.After(cutoff) {
			return nil
		}
		if s.opts.DryRun {
			expired = true
			return nil
		}
		if err := tx.UpdateReservationStatus(ctx, res.ID, model.ReservationExpired); err != nil {
			return err
		}
		if err := tx.UpdateSeatStatus(ctx, res.SeatID, model.SeatAvailable); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}
