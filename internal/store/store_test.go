package store

import (
	"math"
	"testing"
	"time"

	"github.com/sadopc/ritmo/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTransaction(item string, diff int64) Transaction {
	return Transaction{
		Item: item, Type: "normal",
		TMA: 300, TimeSpent: 300 + diff, Difference: diff,
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/ritmo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Transactions
// ============================================================

func TestAddAndGetTransaction(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	tx := testTransaction("pedido-1", 45)
	tx.Timestamp = &ts

	added, err := s.AddTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}
	if added.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if added.Item != "pedido-1" || added.Difference != 45 {
		t.Fatalf("unexpected transaction: %+v", added)
	}
	if added.Timestamp == nil || !added.Timestamp.Equal(ts) {
		t.Fatalf("timestamp did not round-trip: %v", added.Timestamp)
	}
	if added.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestAddTransactionWithoutTimestamp(t *testing.T) {
	s := newTestStore(t)
	added, err := s.AddTransaction(testTransaction("a", 10))
	if err != nil {
		t.Fatal(err)
	}
	if added.Timestamp != nil {
		t.Fatal("timestamp should stay nil")
	}
	rec := added.Record()
	if rec.HasTime {
		t.Fatal("record should carry HasTime=false")
	}
}

func TestAddTransactionAdjustsBalance(t *testing.T) {
	s := newTestStore(t)
	s.AddTransaction(testTransaction("a", 45))
	s.AddTransaction(testTransaction("b", -20))

	balance, err := s.BalanceSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if balance != 25 {
		t.Fatalf("balance = %v, want 25", balance)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.AddTransaction(testTransaction("first", 1))
	s.AddTransaction(testTransaction("second", 2))

	txs, err := s.ListTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Item != "second" || txs[1].Item != "first" {
		t.Fatalf("expected newest first: %s, %s", txs[0].Item, txs[1].Item)
	}
}

func TestListTransactionsEmpty(t *testing.T) {
	s := newTestStore(t)
	txs, err := s.ListTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if txs != nil {
		t.Fatalf("expected nil slice, got %d items", len(txs))
	}
}

func TestDeleteTransactionRestoresBalance(t *testing.T) {
	s := newTestStore(t)
	added, _ := s.AddTransaction(testTransaction("a", 45))
	s.AddTransaction(testTransaction("b", -20))

	if err := s.DeleteTransaction(added.ID); err != nil {
		t.Fatal(err)
	}
	txs, _ := s.ListTransactions()
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction left, got %d", len(txs))
	}
	balance, _ := s.BalanceSeconds()
	if balance != -20 {
		t.Fatalf("balance = %v, want -20", balance)
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteTransaction(999); err == nil {
		t.Fatal("expected error for missing transaction")
	}
}

func TestClearTransactions(t *testing.T) {
	s := newTestStore(t)
	s.AddTransaction(testTransaction("a", 10))
	if err := s.ClearTransactions(); err != nil {
		t.Fatal(err)
	}
	txs, _ := s.ListTransactions()
	if txs != nil {
		t.Fatal("expected no transactions after clear")
	}
}

// ============================================================
// Paused work
// ============================================================

func TestPausedWorkUpsert(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2024, 3, 15, 11, 0, 0, 0, time.Local)
	p := PausedWork{
		ID: "pw-1", Item: "pedido-9", Type: "complexa",
		TMA: 600, AccumulatedSeconds: 120, UpdatedAt: &ts,
	}
	if err := s.UpsertPausedWork(p); err != nil {
		t.Fatal(err)
	}

	// Second upsert with the same ID replaces the row.
	p.AccumulatedSeconds = 240
	if err := s.UpsertPausedWork(p); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListPausedWork()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}
	if list[0].AccumulatedSeconds != 240 {
		t.Fatalf("upsert did not replace: %+v", list[0])
	}
	if list[0].UpdatedAt == nil || !list[0].UpdatedAt.Equal(ts) {
		t.Fatalf("updated_at did not round-trip: %v", list[0].UpdatedAt)
	}
}

func TestPausedWorkDelete(t *testing.T) {
	s := newTestStore(t)
	s.UpsertPausedWork(PausedWork{ID: "pw-1", Item: "a", Type: "normal", AccumulatedSeconds: 10})
	if err := s.DeletePausedWork("pw-1"); err != nil {
		t.Fatal(err)
	}
	list, _ := s.ListPausedWork()
	if list != nil {
		t.Fatal("expected empty list after delete")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		"balance_seconds":    "0",
		"lunch_start":        "-1",
		"lunch_end":          "-1",
		"shift_start":        "28800",
		"show_complexa":      "1",
		"show_locked_awards": "0",
		"daily_goal":         "17",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestBalanceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetBalance(-123.5); err != nil {
		t.Fatal(err)
	}
	balance, err := s.BalanceSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if balance != -123.5 {
		t.Fatalf("balance = %v, want -123.5", balance)
	}
}

func TestBalanceNaNRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetBalance(math.NaN()); err != nil {
		t.Fatal(err)
	}
	balance, err := s.BalanceSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(balance) {
		t.Fatalf("NaN should round-trip, got %v", balance)
	}
}

func TestLunchWindowUnsetByDefault(t *testing.T) {
	s := newTestStore(t)
	w, err := s.LunchWindow()
	if err != nil {
		t.Fatal(err)
	}
	if w != nil {
		t.Fatalf("expected nil window, got %+v", w)
	}
}

func TestLunchWindowRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := &core.LunchWindow{Start: 12 * 3600, End: 13 * 3600}
	if err := s.SetLunchWindow(want); err != nil {
		t.Fatal(err)
	}
	w, _ := s.LunchWindow()
	if w == nil || w.Start != want.Start || w.End != want.End {
		t.Fatalf("window did not round-trip: %+v", w)
	}

	// Clearing the window resets to unset.
	s.SetLunchWindow(nil)
	if w, _ := s.LunchWindow(); w != nil {
		t.Fatal("cleared window should read as nil")
	}
}

func TestBoolSettings(t *testing.T) {
	s := newTestStore(t)

	if v, _ := s.ShowComplexa(); !v {
		t.Fatal("show_complexa defaults on")
	}
	s.SetShowComplexa(false)
	if v, _ := s.ShowComplexa(); v {
		t.Fatal("show_complexa should be off")
	}

	if v, _ := s.ShowLockedAwards(); v {
		t.Fatal("show_locked_awards defaults off")
	}
	s.SetShowLockedAwards(true)
	if v, _ := s.ShowLockedAwards(); !v {
		t.Fatal("show_locked_awards should be on")
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 7 {
		t.Fatalf("expected at least 7 default settings, got %d", len(all))
	}
	// Should be sorted by key
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

// ============================================================
// Snapshot assembly
// ============================================================

func TestSnapshotAssembly(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2024, 3, 15, 9, 15, 0, 0, time.Local)
	tx := testTransaction("pedido-1", 30)
	tx.Timestamp = &ts
	s.AddTransaction(tx)
	s.AddTransaction(testTransaction("pedido-2", -10))
	s.SetLunchWindow(&core.LunchWindow{Start: 12 * 3600, End: 13 * 3600})
	s.UpsertPausedWork(PausedWork{ID: "pw-1", Item: "pedido-3", Type: "normal", AccumulatedSeconds: 60})

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.BalanceSeconds != 20 {
		t.Fatalf("balance = %v, want 20", snap.BalanceSeconds)
	}
	if len(snap.Transactions) != 2 || snap.Transactions[0].Item != "pedido-2" {
		t.Fatalf("transactions wrong or not newest first: %+v", snap.Transactions)
	}
	if !snap.Transactions[1].HasTime {
		t.Fatal("timestamped transaction lost its clock")
	}
	if snap.Lunch == nil || snap.Lunch.Start != 12*3600 {
		t.Fatalf("lunch window missing: %+v", snap.Lunch)
	}
	if snap.ShiftStartSeconds != 28800 {
		t.Fatalf("shift start = %d", snap.ShiftStartSeconds)
	}
	if len(snap.PausedWork) != 1 || snap.PausedWork["pw-1"].Item != "pedido-3" {
		t.Fatalf("paused work missing: %+v", snap.PausedWork)
	}
}

func TestImportSnapshotReplacesState(t *testing.T) {
	s := newTestStore(t)
	s.AddTransaction(testTransaction("old", 999))
	s.UpsertPausedWork(PausedWork{ID: "old", Item: "old", Type: "normal", AccumulatedSeconds: 1})

	ts := time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)
	incoming := core.Snapshot{
		BalanceSeconds: -75,
		Transactions: []core.TransactionRecord{
			{Item: "new-2", Type: "normal", TMA: 300, TimeSpent: 250, Difference: -50},
			{Item: "new-1", Type: "retorno", TMA: 200, TimeSpent: 175, Difference: -25, Timestamp: ts, HasTime: true},
		},
		Lunch:             &core.LunchWindow{Start: 11 * 3600, End: 12 * 3600},
		ShiftStartSeconds: 7 * 3600,
		ShowComplexa:      false,
		PausedWork: map[string]core.PausedWorkEntry{
			"pw-9": {ID: "pw-9", Item: "pedido-9", Type: "complexa", TMA: 600, AccumulatedSeconds: 90},
		},
	}
	if err := s.ImportSnapshot(incoming); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.BalanceSeconds != -75 {
		t.Fatalf("balance = %v, want -75", snap.BalanceSeconds)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(snap.Transactions))
	}
	// Newest-first order must survive the round trip.
	if snap.Transactions[0].Item != "new-2" || snap.Transactions[1].Item != "new-1" {
		t.Fatalf("order lost: %s, %s", snap.Transactions[0].Item, snap.Transactions[1].Item)
	}
	if !snap.Transactions[1].HasTime || !snap.Transactions[1].Timestamp.Equal(ts) {
		t.Fatal("timestamp lost in import")
	}
	if snap.Lunch == nil || snap.Lunch.Start != 11*3600 {
		t.Fatalf("lunch window wrong: %+v", snap.Lunch)
	}
	if snap.ShiftStartSeconds != 7*3600 {
		t.Fatalf("shift start = %d", snap.ShiftStartSeconds)
	}
	if snap.ShowComplexa {
		t.Fatal("show_complexa should import as off")
	}
	if _, ok := snap.PausedWork["old"]; ok {
		t.Fatal("old paused work should be gone")
	}
	if _, ok := snap.PausedWork["pw-9"]; !ok {
		t.Fatal("imported paused work missing")
	}
}

// ============================================================
// Close safety
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
}
