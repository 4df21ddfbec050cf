package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameBigTwo is the authoritative match handler name registered with Nakama.
	MatchNameBigTwo = "bigtwo_match"

	// MatchLabelKey_OpenSeats is the label key used by lobby queries.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch int64 = 1
	OpPlayCards  int64 = 2
	OpPassTurn   int64 = 3
	OpNewMatch   int64 = 4

	// Server -> Client events
	OpPlayerJoined    int64 = 101
	OpPlayerLeft      int64 = 102
	OpMatchStarted    int64 = 103
	OpHandDealt       int64 = 104 // sent privately
	OpCardPlayed      int64 = 105
	OpTurnPassed      int64 = 106
	OpSeedingResolved int64 = 107
	OpMatchEnded      int64 = 108
	OpMatchState      int64 = 109 // sent privately, viewer projection

	OpError int64 = 201
)
