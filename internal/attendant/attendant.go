package attendant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
	"github.com/eugenenazirov/cloakroom/internal/metrics"
	"github.com/eugenenazirov/cloakroom/internal/storage"
)

// Receipt describes a closed locker and the token that reopens it.
type Receipt struct {
	LockerNumber int
	Token        string
	Items        cloakroom.Items
}

// Collection describes the contents handed back when a locker is vacated.
type Collection struct {
	LockerNumber int
	Items        cloakroom.Items
}

// Layout describes the fixed shape of the cloakroom and its current use.
type Layout struct {
	NumLockers        int
	MaxItemsPerLocker int
	Occupancy         cloakroom.Occupancy
}

// Attendant serves many customers from one cloakroom. Every operation holds
// a single lock for its whole read-modify-write sequence.
type Attendant struct {
	mu      sync.Mutex
	room    *cloakroom.Cloakroom
	keys    storage.KeyStore
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures an Attendant.
type Option func(*Attendant)

// WithMetrics records operations and occupancy in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Attendant) {
		a.metrics = m
	}
}

// New constructs an Attendant over room, keeping customer keys in keys.
func New(room *cloakroom.Cloakroom, keys storage.KeyStore, logger *zap.Logger, opts ...Option) *Attendant {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Attendant{
		room:   room,
		keys:   keys,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.metrics.SetOccupancy(room.Occupancy())
	return a
}

// Deposit places items in the lowest numbered free locker, closes it and
// returns a receipt carrying the key token. When the items do not fit the
// locker is vacated again and ErrCapacityExceeded is returned.
func (a *Attendant) Deposit(ctx context.Context, items cloakroom.Items) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	locker, ok := a.room.FindFreeLocker()
	if !ok {
		a.record("deposit", ErrNoFreeLockers)
		return Receipt{}, ErrNoFreeLockers
	}

	if err := fill(locker, items); err != nil {
		if _, vacateErr := a.room.Vacate(locker); vacateErr != nil {
			err = errors.Join(err, vacateErr)
		}
		a.record("deposit", err)
		return Receipt{}, fmt.Errorf("deposit in locker %d: %w", locker.Number(), err)
	}

	receipt, err := a.closeAndIssue(locker)
	a.record("deposit", err)
	if err != nil {
		return Receipt{}, err
	}

	a.logger.Info("items deposited",
		zap.Int("locker", receipt.LockerNumber),
		zap.Int("total_items", receipt.Items.Total()),
	)
	return receipt, nil
}

// Collect redeems the key registered under token and hands back everything
// in the locker, leaving it free.
func (a *Attendant) Collect(ctx context.Context, token string) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return Collection{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	locker, err := a.open(token)
	if err != nil {
		a.record("collect", err)
		return Collection{}, err
	}

	items, err := a.room.Vacate(locker)
	a.record("collect", err)
	if err != nil {
		return Collection{}, fmt.Errorf("vacate locker %d: %w", locker.Number(), err)
	}

	a.logger.Info("items collected",
		zap.Int("locker", locker.Number()),
		zap.Int("total_items", items.Total()),
	)
	return Collection{LockerNumber: locker.Number(), Items: items}, nil
}

// Change replaces the contents of a closed locker and closes it again
// under a fresh token; the presented token stops working. When the new
// contents do not fit, the locker keeps its old contents, the presented
// token stays valid and ErrCapacityExceeded is returned.
func (a *Attendant) Change(ctx context.Context, token string, items cloakroom.Items) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	locker, err := a.open(token)
	if err != nil {
		a.record("change", err)
		return Receipt{}, err
	}

	previous := locker.Items()
	if err := fill(locker, items); err != nil {
		restoreErr := fill(locker, previous)
		key, closeErr := a.room.Close(locker)
		if closeErr == nil {
			closeErr = a.keys.Replace(token, key)
		}
		if joined := errors.Join(restoreErr, closeErr); joined != nil {
			a.logger.Error("failed to re-close locker after rejected change",
				zap.Int("locker", locker.Number()),
				zap.Error(joined),
			)
			err = errors.Join(err, joined)
		}
		a.record("change", err)
		return Receipt{}, fmt.Errorf("change locker %d: %w", locker.Number(), err)
	}

	receipt, err := a.closeAndIssue(locker)
	a.record("change", err)
	if err != nil {
		return Receipt{}, err
	}

	a.logger.Info("locker contents changed",
		zap.Int("locker", receipt.LockerNumber),
		zap.Int("total_items", receipt.Items.Total()),
	)
	return receipt, nil
}

// ClosedLockers lists closed lockers with their contents in ascending order.
func (a *Attendant) ClosedLockers() []cloakroom.ClosedLocker {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.room.ClosedLockers()
}

// LockerState reports the state of one locker slot.
func (a *Attendant) LockerState(number int) cloakroom.SlotState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.room.LockerState(number)
}

// Layout reports the cloakroom dimensions and occupancy.
func (a *Attendant) Layout() Layout {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Layout{
		NumLockers:        a.room.NumLockers(),
		MaxItemsPerLocker: a.room.MaxItemsPerLocker(),
		Occupancy:         a.room.Occupancy(),
	}
}

// Audit checks that every closed locker has exactly one outstanding key
// and that no key refers to a locker that is not closed.
func (a *Attendant) Audit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	closed := a.room.ClosedLockers()
	want := make([]int, 0, len(closed))
	for _, c := range closed {
		want = append(want, c.Number)
	}

	got := a.keys.LockerNumbers()
	if !slices.Equal(want, got) {
		return fmt.Errorf("%w: closed %v, keys %v", ErrRecordsOutOfSync, want, got)
	}
	return nil
}

func (a *Attendant) open(token string) (*cloakroom.Locker, error) {
	key, err := a.keys.Take(token)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownKey) {
			return nil, ErrUnknownKey
		}
		return nil, err
	}

	locker, err := a.room.Open(key)
	if err != nil {
		if errors.Is(err, cloakroom.ErrInconsistentState) {
			a.logger.Error("key refers to a locker that is not closed",
				zap.Int("locker", key.LockerNumber()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("open locker %d: %w", key.LockerNumber(), err)
	}
	return locker, nil
}

func (a *Attendant) closeAndIssue(locker *cloakroom.Locker) (Receipt, error) {
	items := locker.Items()
	key, err := a.room.Close(locker)
	if err != nil {
		return Receipt{}, fmt.Errorf("close locker %d: %w", locker.Number(), err)
	}

	token, err := a.keys.Put(key)
	if err != nil {
		return Receipt{}, fmt.Errorf("store key for locker %d: %w", key.LockerNumber(), err)
	}

	return Receipt{
		LockerNumber: key.LockerNumber(),
		Token:        token,
		Items:        items,
	}, nil
}

func (a *Attendant) record(operation string, err error) {
	a.metrics.ObserveOperation(operation, outcome(err))
	a.metrics.SetOccupancy(a.room.Occupancy())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoFreeLockers):
		return "no_free_lockers"
	case errors.Is(err, ErrUnknownKey):
		return "unknown_key"
	case errors.Is(err, cloakroom.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, cloakroom.ErrInconsistentState):
		return "inconsistent"
	default:
		return "error"
	}
}
