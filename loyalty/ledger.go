package loyalty

import (
	"cinema_booking/constants"
	"cinema_booking/metrics"
	"cinema_booking/model"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type AccountRepository interface {
	GetAccountById(ctx context.Context, id uint) (*model.Account, error)
}

type MemberRepository interface {
	GetMemberByAccountId(ctx context.Context, accountId uint) (*model.Member, error)
	UpdateMember(ctx context.Context, member *model.Member) error
}

type RankRepository interface {
	GetAllRanks(ctx context.Context) ([]model.Rank, error)
}

type HistoryRepository interface {
	AppendPointHistory(ctx context.Context, entry *model.PointHistory) error
}

// Store is the persistence the ledger mutates. Callers hand in a store
// bound to a transaction that locks the member row.
type Store interface {
	AccountRepository
	MemberRepository
	RankRepository
	HistoryRepository
}

// Outcome tells why a mutation was or was not applied. Skipped outcomes
// are not errors.
type Outcome int

const (
	Applied Outcome = iota
	Failed
	SkippedNonPositive
	SkippedNoMember
	SkippedInsufficientScore
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	case SkippedNonPositive:
		return "skipped_non_positive"
	case SkippedNoMember:
		return "skipped_no_member"
	case SkippedInsufficientScore:
		return "skipped_insufficient_score"
	}
	return "unknown"
}

type Ledger struct {
	store          Store
	notifications  NotificationStore
	now            func() time.Time
	refundValidity time.Duration
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRefundVoucherValidity sets how long minted refund vouchers stay usable.
func WithRefundVoucherValidity(d time.Duration) Option {
	return func(l *Ledger) { l.refundValidity = d }
}

// NewLedger binds a ledger to a store; the notification store is shared
// across ledgers for the life of the process.
func NewLedger(store Store, notifications NotificationStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:          store,
		notifications:  notifications,
		now:            time.Now,
		refundValidity: 90 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddPoints credits Score and TotalPoints, re-resolves the rank and queues
// a notification when the rank changes. Missing accounts are ignored.
func (l *Ledger) AddPoints(ctx context.Context, accountID uint, amount int, isTestMode bool) (Outcome, error) {
	return l.add(ctx, accountID, amount, constants.POINT_REASON_MANUAL, isTestMode)
}

// DeductPoints debits Score. TotalPoints is only reduced, clamped at zero,
// when deductFromTotalPoints is set. A debit above the balance is ignored.
func (l *Ledger) DeductPoints(ctx context.Context, accountID uint, amount int, deductFromTotalPoints bool) (Outcome, error) {
	return l.deduct(ctx, accountID, amount, deductFromTotalPoints, constants.POINT_REASON_MANUAL_DEDUCT)
}

// GetAndClearNotification returns the pending rank message once.
func (l *Ledger) GetAndClearNotification(ctx context.Context, accountID uint) (string, bool) {
	if l.notifications == nil {
		return "", false
	}
	msg, ok, err := l.notifications.Take(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Uint("accountId", accountID).Msg("read rank notification")
		return "", false
	}
	return msg, ok
}

func (l *Ledger) add(ctx context.Context, accountID uint, amount int, reason string, testMode bool) (Outcome, error) {
	if amount <= 0 {
		return SkippedNonPositive, nil
	}
	member, err := l.loadMember(ctx, accountID)
	if err != nil {
		return Failed, err
	}
	if member == nil {
		return SkippedNoMember, nil
	}

	previous := member.RankId
	member.Score += amount
	member.TotalPoints += amount

	rank, err := l.resolve(ctx, member.TotalPoints)
	if err != nil {
		return Failed, err
	}
	upgraded := false
	if rank != nil {
		upgraded = previous == nil || *previous != rank.ID
		member.RankId = &rank.ID
		member.Rank = rank
	}

	if err := l.persist(ctx, member, amount, reason, testMode); err != nil {
		return Failed, err
	}
	metrics.PointsMoved.WithLabelValues("earn", reason).Add(float64(amount))

	if upgraded {
		metrics.RankUpgrades.Inc()
		l.notify(ctx, accountID, rank.Name)
	}
	log.Info().
		Uint("accountId", accountID).
		Int("amount", amount).
		Int("score", member.Score).
		Int("totalPoints", member.TotalPoints).
		Str("reason", reason).
		Bool("testMode", testMode).
		Msg("points added")
	return Applied, nil
}

func (l *Ledger) deduct(ctx context.Context, accountID uint, amount int, fromTotal bool, reason string) (Outcome, error) {
	if amount <= 0 {
		return SkippedNonPositive, nil
	}
	member, err := l.loadMember(ctx, accountID)
	if err != nil {
		return Failed, err
	}
	if member == nil {
		return SkippedNoMember, nil
	}
	if amount > member.Score {
		log.Debug().Uint("accountId", accountID).Int("amount", amount).Int("score", member.Score).Msg("deduction above balance ignored")
		return SkippedInsufficientScore, nil
	}

	member.Score -= amount
	if fromTotal {
		member.TotalPoints -= amount
		if member.TotalPoints < 0 {
			member.TotalPoints = 0
		}
		rank, err := l.resolve(ctx, member.TotalPoints)
		if err != nil {
			return Failed, err
		}
		if rank != nil {
			member.RankId = &rank.ID
			member.Rank = rank
		}
	}

	if err := l.persist(ctx, member, -amount, reason, false); err != nil {
		return Failed, err
	}
	metrics.PointsMoved.WithLabelValues("spend", reason).Add(float64(amount))
	log.Info().
		Uint("accountId", accountID).
		Int("amount", amount).
		Int("score", member.Score).
		Bool("fromTotal", fromTotal).
		Str("reason", reason).
		Msg("points deducted")
	return Applied, nil
}

func (l *Ledger) loadMember(ctx context.Context, accountID uint) (*model.Member, error) {
	account, err := l.store.GetAccountById(ctx, accountID)
	if err != nil {
		return nil, errors.Wrapf(err, "load account %d", accountID)
	}
	if account == nil {
		return nil, nil
	}
	member, err := l.store.GetMemberByAccountId(ctx, accountID)
	if err != nil {
		return nil, errors.Wrapf(err, "load member of account %d", accountID)
	}
	return member, nil
}

func (l *Ledger) resolve(ctx context.Context, totalPoints int) (*model.Rank, error) {
	ranks, err := l.store.GetAllRanks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load ranks")
	}
	return ResolveRank(ranks, totalPoints), nil
}

func (l *Ledger) persist(ctx context.Context, member *model.Member, delta int, reason string, testMode bool) error {
	if err := l.store.UpdateMember(ctx, member); err != nil {
		return errors.Wrapf(err, "update member of account %d", member.AccountId)
	}
	entry := &model.PointHistory{
		AccountId:  member.AccountId,
		Delta:      delta,
		ScoreAfter: member.Score,
		Reason:     reason,
		TestMode:   testMode,
	}
	if err := l.store.AppendPointHistory(ctx, entry); err != nil {
		return errors.Wrap(err, "append point history")
	}
	return nil
}

func (l *Ledger) notify(ctx context.Context, accountID uint, rankName string) {
	if l.notifications == nil {
		return
	}
	msg := fmt.Sprintf("Congratulations! Your membership has been upgraded to %s.", rankName)
	if err := l.notifications.Put(ctx, accountID, msg); err != nil {
		log.Error().Err(err).Uint("accountId", accountID).Msg("queue rank notification")
	}
}

// ResolveRank picks the rank with the highest threshold not above
// totalPoints. Nil when none qualifies.
func ResolveRank(ranks []model.Rank, totalPoints int) *model.Rank {
	var best *model.Rank
	for i := range ranks {
		if ranks[i].RequiredPoints > totalPoints {
			continue
		}
		if best == nil || ranks[i].RequiredPoints > best.RequiredPoints {
			r := ranks[i]
			best = &r
		}
	}
	return best
}

// NextRank returns the lowest rank above totalPoints, for progress display.
func NextRank(ranks []model.Rank, totalPoints int) *model.Rank {
	var next *model.Rank
	for i := range ranks {
		if ranks[i].RequiredPoints <= totalPoints {
			continue
		}
		if next == nil || ranks[i].RequiredPoints < next.RequiredPoints {
			r := ranks[i]
			next = &r
		}
	}
	return next
}
