package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordPull(Pull{SessionID: "s1", Player: "ana", Aura: "Ruby", Rarity: 100, RollIndex: 4}); err != nil {
		t.Fatalf("RecordPull() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	pulls, err := store.TopPulls(10)
	if err != nil {
		t.Fatalf("TopPulls() failed: %v", err)
	}
	if len(pulls) != 1 {
		t.Fatalf("Expected 1 pull after reopen, got %d", len(pulls))
	}
}

func TestStoreTopPullsOrder(t *testing.T) {
	store := openTestStore(t)

	pulls := []Pull{
		{SessionID: "s1", Player: "ana", Aura: "Ruby", Rarity: 100, RollIndex: 3, Biome: "Volcano"},
		{SessionID: "s1", Player: "ana", Aura: "Diamond", Rarity: 1000, RollIndex: 9, Biome: "Mountain"},
		{SessionID: "s2", Player: "ben", Aura: "Ruby", Rarity: 100, Shiny: true, RollIndex: 2, Biome: "Volcano"},
		{SessionID: "s2", Player: "ben", Aura: "Amber", Rarity: 2, Shiny: true, RollIndex: 1, Biome: "Plains"},
	}
	for _, p := range pulls {
		if _, err := store.RecordPull(p); err != nil {
			t.Fatalf("RecordPull() failed: %v", err)
		}
	}

	top, err := store.TopPulls(3)
	if err != nil {
		t.Fatalf("TopPulls() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 pulls, got %d", len(top))
	}

	want := []string{"Diamond", "Shiny Ruby", "Ruby"}
	for i, name := range want {
		if got := top[i].DisplayName(); got != name {
			t.Errorf("TopPulls()[%d] = %s, want %s", i, got, name)
		}
	}
	if top[0].Player != "ana" || top[0].Biome != "Mountain" || top[0].RollIndex != 9 {
		t.Errorf("TopPulls()[0] = %+v, fields not round-tripped", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestStorePlayerPulls(t *testing.T) {
	store := openTestStore(t)

	for i, aura := range []string{"Ruby", "Emerald", "Sapphire"} {
		if _, err := store.RecordPull(Pull{SessionID: "s", Player: "ana", Aura: aura, Rarity: 100, RollIndex: i + 1}); err != nil {
			t.Fatalf("RecordPull() failed: %v", err)
		}
	}
	if _, err := store.RecordPull(Pull{SessionID: "t", Player: "ben", Aura: "Galaxy", Rarity: 5000, RollIndex: 1}); err != nil {
		t.Fatalf("RecordPull() failed: %v", err)
	}

	pulls, err := store.PlayerPulls("ana", 2)
	if err != nil {
		t.Fatalf("PlayerPulls() failed: %v", err)
	}
	if len(pulls) != 2 {
		t.Fatalf("Expected 2 pulls, got %d", len(pulls))
	}
	// Most recent first
	if pulls[0].Aura != "Sapphire" || pulls[1].Aura != "Emerald" {
		t.Errorf("PlayerPulls() = %s, %s; want Sapphire, Emerald", pulls[0].Aura, pulls[1].Aura)
	}
}

func TestStoreUpsertPlayer(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertPlayer(PlayerStats{Player: "ana", TotalRolls: 10, BestAura: "Ruby", BestRarity: 100}); err != nil {
		t.Fatalf("UpsertPlayer() failed: %v", err)
	}
	if err := store.UpsertPlayer(PlayerStats{Player: "ana", TotalRolls: 50, UniqueAuras: 6, ShinyTotal: 1, BestAura: "Diamond", BestRarity: 1000, Titles: 2}); err != nil {
		t.Fatalf("UpsertPlayer() failed: %v", err)
	}
	if err := store.UpsertPlayer(PlayerStats{Player: "ben", TotalRolls: 500, BestAura: "Emerald", BestRarity: 200}); err != nil {
		t.Fatalf("UpsertPlayer() failed: %v", err)
	}

	ana, err := store.Player("ana")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if ana == nil {
		t.Fatal("Expected player ana to exist")
	}
	if ana.TotalRolls != 50 || ana.BestAura != "Diamond" || ana.Titles != 2 {
		t.Errorf("Player(ana) = %+v, want updated summary", ana)
	}

	players, err := store.TopPlayers(10)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(players))
	}
	if players[0].Player != "ana" {
		t.Errorf("Expected ana ranked first, got %s", players[0].Player)
	}

	missing, err := store.Player("nobody")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Player(nobody) = %+v, want nil", missing)
	}
}

func TestStoreClearPlayer(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordPull(Pull{SessionID: "s", Player: "ana", Aura: "Ruby", Rarity: 100, RollIndex: 1}); err != nil {
		t.Fatalf("RecordPull() failed: %v", err)
	}
	if _, err := store.RecordPull(Pull{SessionID: "t", Player: "ben", Aura: "Ruby", Rarity: 100, RollIndex: 1}); err != nil {
		t.Fatalf("RecordPull() failed: %v", err)
	}
	if err := store.UpsertPlayer(PlayerStats{Player: "ana", TotalRolls: 1}); err != nil {
		t.Fatalf("UpsertPlayer() failed: %v", err)
	}

	if err := store.ClearPlayer("ana"); err != nil {
		t.Fatalf("ClearPlayer() failed: %v", err)
	}

	pulls, _ := store.PlayerPulls("ana", 10)
	if len(pulls) != 0 {
		t.Errorf("Expected 0 pulls for ana after clear, got %d", len(pulls))
	}
	others, _ := store.PlayerPulls("ben", 10)
	if len(others) != 1 {
		t.Errorf("Expected ben's pull to survive, got %d", len(others))
	}
	if p, _ := store.Player("ana"); p != nil {
		t.Error("Expected ana's summary to be deleted")
	}
}

func TestStoreEmptyLeaderboard(t *testing.T) {
	store := openTestStore(t)

	pulls, err := store.TopPulls(0)
	if err != nil {
		t.Fatalf("TopPulls() failed: %v", err)
	}
	if len(pulls) != 0 {
		t.Errorf("Expected empty leaderboard, got %d", len(pulls))
	}
}
