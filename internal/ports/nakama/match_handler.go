package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/config"
	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"`
	App                  *app.Service                `json:"-"`
	Match                *domain.Match               `json:"-"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`
	BotMaxDelay          int                         `json:"bot_max_delay"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"`
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	TurnDuration         int                         `json:"turn_duration"`
	TurnSeat             int                         `json:"turn_seat"`
	TurnStartTick        int64                       `json:"turn_start_tick"`
	Bots                 map[string]*bot.Agent       `json:"-"`
}

// GetOpenSeatsCount reports lobby capacity. A match past the waiting phase
// accepts no new players.
func (ms *MatchState) GetOpenSeatsCount() int {
	if ms.Match == nil || ms.Match.Phase != domain.PhaseWaiting {
		return 0
	}
	return domain.MaxSeats - len(ms.Match.Seats)
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Match.Seats {
		if !isBotUserId(seat.UserID) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// findFirstHumanSeat returns the first seat position with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []*domain.Seat) int {
	for _, seat := range seats {
		if !isBotUserId(seat.UserID) {
			return seat.Position
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []*domain.Seat) bool {
	return findFirstHumanSeat(seats) == -1
}

// ownerID returns the user id allowed to control lobby transitions: the
// first seated human.
func (ms *MatchState) ownerID() string {
	for _, seat := range ms.Match.Seats {
		if !isBotUserId(seat.UserID) {
			return seat.UserID
		}
	}
	return ""
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	svc := app.NewService(nil)
	minDelay, maxDelay := config.BotDelays()
	state := &MatchState{
		Presences:        make(map[string]runtime.Presence),
		App:              svc,
		Match:            svc.NewMatch(config.MatchRules()),
		BotMinDelay:      minDelay,
		BotMaxDelay:      maxDelay,
		BotAutoFillDelay: config.BotAutoFillDelay(),
		TurnDuration:     config.TurnDuration(),
		TurnSeat:         -1,
		Bots:             make(map[string]*bot.Agent),
	}
	if c := config.GetGameConfig(); c != nil {
		state.BotsEnabled = c.BotsEnabled
	}

	// Environment variables override the file configuration.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["bigtwo_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["bigtwo_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["bigtwo_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["bigtwo_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if val, ok := env["bigtwo_turn_duration_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.TurnDuration = i
		}
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: string(state.Match.Phase),
		Game:  "bigtwo",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects are always allowed.
	if matchState.Match.SeatOf(presence.GetUserId()) != nil {
		return state, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace before the game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Match.Phase == domain.PhaseWaiting {
			for _, seat := range matchState.Match.Seats {
				if isBotUserId(seat.UserID) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.Match.SeatOf(p.GetUserId()) != nil {
			// Reconnect: no seat change, just resync below.
			continue
		}

		if err := mh.seatPlayer(matchState, dispatcher, logger, p.GetUserId()); err != nil {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available: %v", p.GetUserId(), err)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// seatPlayer seats a human, evicting a lobby bot when the table is full.
func (mh *matchHandler) seatPlayer(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) error {
	_, events, err := state.App.Join(state.Match, userID)
	if errors.Is(err, domain.ErrMatchFull) && state.Match.Phase == domain.PhaseWaiting {
		for _, seat := range state.Match.Seats {
			if isBotUserId(seat.UserID) {
				botID := seat.UserID
				logger.Info("seatPlayer: Replacing bot %s with human %s", botID, userID)
				leaveEvents, leaveErr := state.App.Leave(state.Match, botID)
				if leaveErr != nil {
					return leaveErr
				}
				delete(state.Bots, botID)
				for _, ev := range leaveEvents {
					mh.broadcastEvent(state, dispatcher, logger, ev)
				}
				_, events, err = state.App.Join(state.Match, userID)
				break
			}
		}
	}
	if err != nil {
		return err
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	return nil
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		events, err := matchState.App.Leave(matchState.Match, p.GetUserId())
		if err != nil {
			logger.Debug("MatchLeave: User %s left without an active seat: %v", p.GetUserId(), err)
			continue
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	if shouldTerminateNoHumans(matchState.Match.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		case OpNewMatch:
			mh.handleNewMatch(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}
	mh.enforceTurnTimer(matchState, dispatcher, logger)

	return matchState
}

// enforceTurnTimer forces a move when a human sits on their turn past the
// configured timeout: a pass where passing is legal, otherwise the weakest
// legal play. Bots pace themselves in processBots and are exempt.
func (mh *matchHandler) enforceTurnTimer(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.TurnDuration <= 0 {
		return
	}
	m := state.Match
	if m.Phase != domain.PhaseSeeding && m.Phase != domain.PhaseActive {
		state.TurnSeat = -1
		return
	}

	if m.CurrentTurn != state.TurnSeat {
		state.TurnSeat = m.CurrentTurn
		state.TurnStartTick = state.Tick
		return
	}
	if state.Tick-state.TurnStartTick < int64(state.TurnDuration) {
		return
	}

	seat := m.SeatAt(m.CurrentTurn)
	if seat == nil || isBotUserId(seat.UserID) {
		return
	}
	logger.Info("enforceTurnTimer: User %s (seat %d) timed out", seat.UserID, seat.Position)
	state.TurnStartTick = state.Tick

	var events []app.Event
	var err error
	if m.Phase == domain.PhaseActive && m.LastPlay != nil {
		events, err = state.App.PassTurn(m, seat.UserID)
	} else {
		// Leading or seeding: passing is illegal, so a strategy picks the play.
		move, moveErr := (&bot.GreedyBot{}).CalculateMove(m, seat)
		if moveErr != nil || move.Pass {
			logger.Error("enforceTurnTimer: No forced move for %s: %v", seat.UserID, moveErr)
			return
		}
		events, err = state.App.PlayCards(m, seat.UserID, move.Cards)
	}
	if err != nil {
		logger.Error("enforceTurnTimer: Forced move for %s failed: %v", seat.UserID, err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if m.Phase == domain.PhaseFinished {
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handleStartMatch(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	logger.Info("StartMatch: Request received from %s (seats=%d)", senderID, len(state.Match.Seats))

	if senderID != state.ownerID() {
		logger.Warn("StartMatch: User %s tried to start the match but is not owner", senderID)
		return
	}
	if len(state.Match.Seats) < app.MinPlayersToStartMatch {
		logger.Warn("StartMatch: Cannot start with %d players. Need at least %d.", len(state.Match.Seats), app.MinPlayersToStartMatch)
		return
	}

	events, err := state.App.StartMatch(state.Match)
	if err != nil {
		logger.Error("StartMatch: Failed to start match: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartMatch: Match started with %d players.", len(state.Match.Seats))
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	request := &playCardsRequest{}
	if err := json.Unmarshal(msg.GetData(), request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed play request")
		return
	}

	events, err := state.App.PlayCards(state.Match, senderID, request.Cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s failed to play %+v: %v", senderID, request.Cards, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Match.Phase == domain.PhaseFinished {
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := state.App.PassTurn(state.Match, senderID)
	if err != nil {
		logger.Warn("handlePassTurn: User %s failed to pass turn: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// handleNewMatch returns a finished table to the lobby, reseating the
// previous occupants in order so a rematch can start immediately.
func (mh *matchHandler) handleNewMatch(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Match.Phase != domain.PhaseFinished {
		logger.Warn("handleNewMatch: User %s requested a new match while %s", senderID, state.Match.Phase)
		return
	}
	if senderID != state.ownerID() {
		logger.Warn("handleNewMatch: User %s is not owner", senderID)
		return
	}

	previous := state.Match
	state.Match = state.App.NewMatch(previous.Rules)
	for _, seat := range previous.Seats {
		// Players who left mid-game keep their sentinel seat in the old
		// match but are not reseated.
		if _, connected := state.Presences[seat.UserID]; !connected && !isBotUserId(seat.UserID) {
			continue
		}
		_, events, err := state.App.Join(state.Match, seat.UserID)
		if err != nil {
			logger.Error("handleNewMatch: Failed to reseat %s: %v", seat.UserID, err)
			continue
		}
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby when a single human has waited long enough.
	if state.Match.Phase == domain.PhaseWaiting {
		if state.GetHumanPlayerCount() == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i := len(state.Match.Seats); i < domain.MaxSeats; i++ {
					identity := bot.GetIdentity(i)
					if _, _, err := state.App.Join(state.Match, identity.UserID); err != nil {
						logger.Error("processBots: Failed to seat bot %s: %v", identity.UserID, err)
						continue
					}
					state.Bots[identity.UserID] = bot.NewAgent(identity.UserID, identity.DisplayName)
					logger.Info("processBots: Added bot %s (%s)", identity.Username, identity.UserID)
					added = true
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns during the seeding round and active play.
	if state.Match.Phase != domain.PhaseSeeding && state.Match.Phase != domain.PhaseActive {
		return
	}

	seat := state.Match.SeatAt(state.Match.CurrentTurn)
	if seat == nil || !isBotUserId(seat.UserID) {
		state.BotWaitUntil = 0
		return
	}
	botID := seat.UserID

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += rand.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d", botID, seat.Position, state.BotWaitUntil)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[botID]
	if !exists {
		agent = bot.NewAgent(botID, bot.GetDisplayName(botID))
		state.Bots[botID] = agent
	}

	move, err := agent.Play(state.Match)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", botID, err)
	}

	var events []app.Event
	if move.Pass {
		events, err = state.App.PassTurn(state.Match, botID)
	} else {
		events, err = state.App.PlayCards(state.Match, botID, move.Cards)
		if err != nil {
			// Keep the match moving if the strategy produced an illegal play.
			logger.Error("processBots: Bot %s illegal play %v: %v", botID, move.Cards, err)
			events, err = state.App.PassTurn(state.Match, botID)
		}
	}
	if err != nil {
		logger.Error("processBots: Bot %s could not act: %v", botID, err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Match.Phase == domain.PhaseFinished {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// broadcastMatchState sends each connected player their private view of the
// table. Projections are per viewer so hands never leak.
func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, presence := range state.Presences {
		snapshot := app.SnapshotFor(state.Match, userID)
		bytes, err := json.Marshal(snapshot)
		if err != nil {
			logger.Error("broadcastMatchState: Failed to marshal snapshot for %s: %v", userID, err)
			continue
		}
		dispatcher.BroadcastMessage(OpMatchState, bytes, []runtime.Presence{presence}, nil, true)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, ok := eventWire(ev)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends an error payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(errorMsg{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: string(state.Match.Phase),
		Game:  "bigtwo",
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
