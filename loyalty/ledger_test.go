package loyalty

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"
	"strings"
	"sync"
	"testing"
)

var testRanks = []model.Rank{rank(2, "Silver", 100), rank(1, "Bronze", 0), rank(3, "Gold", 500)}

// TestAddPointsUpgradeNotificationLifecycle verifies the upgrade message is delivered exactly once.
func TestAddPointsUpgradeNotificationLifecycle(t *testing.T) {
	store := newFakeStore(testRanks...)
	store.addMember(10, 90, 90, uintPtr(1))
	ledger := NewLedger(store, NewMemoryNotificationStore())
	ctx := context.Background()

	outcome, err := ledger.AddPoints(ctx, 10, 20, false)
	if err != nil || outcome != Applied {
		t.Fatalf("expected applied, got %v %v", outcome, err)
	}
	m := store.members[10]
	if m.Score != 110 || m.TotalPoints != 110 || m.RankId == nil || *m.RankId != 2 {
		t.Fatalf("unexpected member after add %+v", m)
	}

	msg, ok := ledger.GetAndClearNotification(ctx, 10)
	if !ok || !strings.Contains(msg, "Silver") {
		t.Fatalf("expected silver notification, got %q %v", msg, ok)
	}
	if _, ok := ledger.GetAndClearNotification(ctx, 10); ok {
		t.Fatalf("notification must be consumed by the first read")
	}
}

// TestAddPointsSameRankNoNotification verifies no message is queued without a rank change.
func TestAddPointsSameRankNoNotification(t *testing.T) {
	store := newFakeStore(testRanks...)
	store.addMember(10, 10, 10, uintPtr(1))
	ledger := NewLedger(store, NewMemoryNotificationStore())

	if _, err := ledger.AddPoints(context.Background(), 10, 5, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := ledger.GetAndClearNotification(context.Background(), 10); ok {
		t.Fatalf("expected no notification")
	}
	if len(store.history) != 1 || !store.history[0].TestMode || store.history[0].Reason != constants.POINT_REASON_MANUAL {
		t.Fatalf("expected one test mode manual history entry, got %+v", store.history)
	}
}

// TestLedgerSilentNoOps separates the missing-member and insufficient-balance no-ops.
func TestLedgerSilentNoOps(t *testing.T) {
	store := newFakeStore(testRanks...)
	store.addMember(10, 5, 50, uintPtr(1))
	ledger := NewLedger(store, NewMemoryNotificationStore())
	ctx := context.Background()

	outcome, err := ledger.AddPoints(ctx, 99, 10, false)
	if err != nil || outcome != SkippedNoMember {
		t.Fatalf("expected skipped_no_member, got %v %v", outcome, err)
	}
	outcome, err = ledger.DeductPoints(ctx, 99, 1, false)
	if err != nil || outcome != SkippedNoMember {
		t.Fatalf("expected skipped_no_member on deduct, got %v %v", outcome, err)
	}

	outcome, err = ledger.DeductPoints(ctx, 10, 6, false)
	if err != nil || outcome != SkippedInsufficientScore {
		t.Fatalf("expected skipped_insufficient_score, got %v %v", outcome, err)
	}
	if store.members[10].Score != 5 {
		t.Fatalf("balance must be untouched, got %d", store.members[10].Score)
	}
	if len(store.history) != 0 {
		t.Fatalf("skipped mutations must not be recorded, got %+v", store.history)
	}

	// account without a member record
	store.accounts[20] = &model.Account{DTO: model.DTO{ID: 20}}
	if outcome, _ := ledger.AddPoints(ctx, 20, 10, false); outcome != SkippedNoMember {
		t.Fatalf("expected skipped_no_member for account without member, got %v", outcome)
	}
}

// TestDeductPointsTotalPoints verifies TotalPoints only moves when asked and clamps at zero.
func TestDeductPointsTotalPoints(t *testing.T) {
	store := newFakeStore(testRanks...)
	store.addMember(10, 150, 120, uintPtr(2))
	ledger := NewLedger(store, NewMemoryNotificationStore())
	ctx := context.Background()

	if _, err := ledger.DeductPoints(ctx, 10, 30, false); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m := store.members[10]; m.Score != 120 || m.TotalPoints != 120 || *m.RankId != 2 {
		t.Fatalf("unexpected member %+v", m)
	}

	if _, err := ledger.DeductPoints(ctx, 10, 30, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m := store.members[10]; m.Score != 90 || m.TotalPoints != 90 || *m.RankId != 1 {
		t.Fatalf("expected downgrade to bronze, got %+v", m)
	}

	if _, err := ledger.DeductPoints(ctx, 10, 90, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	store.members[10].Score = 500
	if _, err := ledger.DeductPoints(ctx, 10, 200, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m := store.members[10]; m.TotalPoints != 0 {
		t.Fatalf("expected total points clamped at zero, got %d", m.TotalPoints)
	}
}

// TestResolveRank verifies the highest qualifying threshold wins and empty tables keep the rank.
func TestResolveRank(t *testing.T) {
	if r := ResolveRank(testRanks, 499); r == nil || r.Name != "Silver" {
		t.Fatalf("expected silver, got %+v", r)
	}
	if r := ResolveRank(testRanks, 500); r == nil || r.Name != "Gold" {
		t.Fatalf("expected gold, got %+v", r)
	}
	if r := ResolveRank(nil, 1000); r != nil {
		t.Fatalf("expected nil for empty table, got %+v", r)
	}
	if r := NextRank(testRanks, 120); r == nil || r.Name != "Gold" {
		t.Fatalf("expected next rank gold, got %+v", r)
	}

	store := newFakeStore(rank(5, "Elite", 1000))
	store.addMember(10, 0, 0, nil)
	ledger := NewLedger(store, NewMemoryNotificationStore())
	if _, err := ledger.AddPoints(context.Background(), 10, 10, false); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if store.members[10].RankId != nil {
		t.Fatalf("expected rank to stay unset, got %v", *store.members[10].RankId)
	}
}

// TestMemoryNotificationStoreFirstReaderWins verifies concurrent readers see the message once.
func TestMemoryNotificationStoreFirstReaderWins(t *testing.T) {
	store := NewMemoryNotificationStore()
	ctx := context.Background()
	if err := store.Put(ctx, 1, "upgraded"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	delivered := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := store.Take(ctx, 1); ok {
				mu.Lock()
				delivered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if delivered != 1 {
		t.Fatalf("expected exactly one delivery, got %d", delivered)
	}
}
