package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// Opcodes mirrored from the server module.
const (
	opStartMatch int64 = 1
	opHandDealt  int64 = 104
)

func TestFullMatchStart(t *testing.T) {
	clients := make([]*TestClient, 4)
	for i := 0; i < 4; i++ {
		clients[i] = NewTestClient(t)
		defer clients[i].Close()
	}
	t.Log("Created 4 clients")

	// Client 0 creates a match via the quick_match RPC.
	matchID := clients[0].QuickMatch(t)
	t.Logf("Client 0 created/joined match: %s", matchID)

	for i := 1; i < 4; i++ {
		if _, err := clients[i].Socket.JoinMatch(context.Background(), nil, matchID, nil); err != nil {
			t.Fatalf("Client %d failed to join match: %v", i, err)
		}
		t.Logf("Client %d joined match", i)
	}

	// Wait a bit for presences to sync.
	time.Sleep(1 * time.Second)

	t.Log("Client 0 sending StartMatch...")
	if _, err := clients[0].Socket.SendMatchState(context.Background(), matchID, opStartMatch, []byte("{}"), nil); err != nil {
		t.Fatalf("Failed to send StartMatch: %v", err)
	}

	// Every client privately receives its hand.
	for i, c := range clients {
		t.Logf("Waiting for HandDealt on Client %d...", i)
		data := c.WaitForMatchState(t, opHandDealt, 5*time.Second)

		var event struct {
			Hand []struct {
				Suit int `json:"suit"`
				Rank int `json:"rank"`
			} `json:"hand"`
		}
		if err := json.Unmarshal(data.Data, &event); err != nil {
			t.Errorf("Client %d failed to unmarshal HandDealt: %v", i, err)
			continue
		}

		if len(event.Hand) != 13 {
			t.Errorf("Client %d expected 13 cards, got %d", i, len(event.Hand))
		}
	}

	t.Log("Match started successfully with 4 players.")
}
