package domain

import "errors"

var (
	ErrNotYourTurn           = errors.New("not your turn")
	ErrNotInPhase            = errors.New("match not in required phase")
	ErrCardsNotHeld          = errors.New("player does not hold these cards")
	ErrInvalidCombination    = errors.New("cards do not form a valid combination")
	ErrPlayTooWeak           = errors.New("play does not beat the last play")
	ErrSeedingRuleViolation  = errors.New("only seed-rank cards may be played during seeding")
	ErrCannotPassOpeningTurn = errors.New("cannot pass when leading a trick")
	ErrInsufficientSeats     = errors.New("not enough seats to start")
	ErrMatchAlreadyStarted   = errors.New("match already started")
	ErrMatchAlreadyFinished  = errors.New("match already finished")
	ErrMatchFull             = errors.New("match is full")
	ErrUnknownPlayer         = errors.New("player not found")
	ErrAlreadySeated         = errors.New("player already seated")
)
