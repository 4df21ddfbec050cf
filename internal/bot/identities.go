package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Identity describes one bot profile available for seat filling.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

var (
	identities     []Identity
	identityIDMap  map[string]Identity
	loadOnce       sync.Once
	loadErr        error
	identitiesLock sync.Mutex
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var pool []Identity
		if err := json.Unmarshal(data, &pool); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		identitiesLock.Lock()
		defer identitiesLock.Unlock()
		identityIDMap = make(map[string]Identity, len(pool))
		for _, id := range pool {
			if id.UserID != "" {
				identities = append(identities, id)
				identityIDMap[id.UserID] = id
			}
		}
	})
	return loadErr
}

// GetIdentity returns an identity for a bot by index. When the pool is
// exhausted or was never loaded, a fresh identity is minted so lobbies can
// always be filled.
func GetIdentity(index int) Identity {
	identitiesLock.Lock()
	defer identitiesLock.Unlock()

	if index < len(identities) {
		return identities[index]
	}

	id := Identity{
		UserID:      "bot-" + uuid.NewString(),
		Username:    fmt.Sprintf("bot_%d", index+1),
		DisplayName: fmt.Sprintf("AI Player %d", index+1),
	}
	if identityIDMap == nil {
		identityIDMap = make(map[string]Identity)
	}
	identityIDMap[id.UserID] = id
	return id
}

// GetDisplayName returns the display name for a bot ID, or an empty string
// if the ID is not a bot.
func GetDisplayName(userID string) string {
	identitiesLock.Lock()
	defer identitiesLock.Unlock()
	return identityIDMap[userID].DisplayName
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	identitiesLock.Lock()
	defer identitiesLock.Unlock()
	_, ok := identityIDMap[userID]
	return ok
}
