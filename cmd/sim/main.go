// Command sim runs headless Big Two matches between bot strategies. It is
// the quickest way to watch the engine play itself and to sanity-check a
// rules change from the terminal.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pterm/pterm"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/domain"
)

const maxTurnsPerMatch = 2000

func main() {
	seedFlag := flag.Int64("seed", 1, "deal seed, same seed replays the same match")
	playersFlag := flag.Int("players", 4, "number of bot players (2-4)")
	openingFlag := flag.String("opening", "seeding", "opening rule: seeding or lowest-card")
	verboseFlag := flag.Bool("v", false, "log every play")
	flag.Parse()

	if *playersFlag < domain.MinSeats || *playersFlag > domain.MaxSeats {
		fmt.Fprintf(os.Stderr, "players must be between %d and %d\n", domain.MinSeats, domain.MaxSeats)
		os.Exit(1)
	}

	rules := domain.DefaultRules()
	switch *openingFlag {
	case "seeding":
		rules.Opening = domain.OpeningSeeding
	case "lowest-card":
		rules.Opening = domain.OpeningLowestCard
	default:
		fmt.Fprintf(os.Stderr, "unknown opening rule %q\n", *openingFlag)
		os.Exit(1)
	}

	pterm.DefaultSection.Printfln("Big Two simulation (seed=%d, players=%d, opening=%s)", *seedFlag, *playersFlag, *openingFlag)

	svc := app.NewService(rand.New(rand.NewSource(*seedFlag)))
	m := svc.NewMatch(rules)

	agents := make(map[string]*bot.Agent, *playersFlag)
	for i := 0; i < *playersFlag; i++ {
		identity := bot.GetIdentity(i)
		if _, _, err := svc.Join(m, identity.UserID); err != nil {
			pterm.Error.Printfln("seat %s: %v", identity.UserID, err)
			os.Exit(1)
		}
		agents[identity.UserID] = bot.NewAgent(identity.UserID, identity.DisplayName)
	}

	if _, err := svc.StartMatch(m); err != nil {
		pterm.Error.Printfln("start: %v", err)
		os.Exit(1)
	}
	pterm.Info.Printfln("Dealt %d cards each, phase %s", len(m.Seats[0].Hand), m.Phase)

	turns := 0
	for m.Phase != domain.PhaseFinished && turns < maxTurnsPerMatch {
		turns++
		seat := m.SeatAt(m.CurrentTurn)
		agent := agents[seat.UserID]

		move, err := agent.Play(m)
		if err != nil {
			pterm.Warning.Printfln("%s strategy error: %v", agent.Name, err)
		}

		if move.Pass {
			if _, err := svc.PassTurn(m, seat.UserID); err != nil {
				pterm.Error.Printfln("%s pass: %v", agent.Name, err)
				os.Exit(1)
			}
			if *verboseFlag {
				pterm.Printfln("%-16s passes", agent.Name)
			}
			continue
		}

		if _, err := svc.PlayCards(m, seat.UserID, move.Cards); err != nil {
			pterm.Error.Printfln("%s play %v: %v", agent.Name, move.Cards, err)
			os.Exit(1)
		}
		if *verboseFlag {
			pterm.Printfln("%-16s plays %s (%s)", agent.Name, cardString(move.Cards), domain.Classify(move.Cards).Category)
		}
	}

	if m.Phase != domain.PhaseFinished {
		pterm.Error.Printfln("match did not finish within %d turns", maxTurnsPerMatch)
		os.Exit(1)
	}

	pterm.Success.Printfln("Finished after %d turns, winner %s", turns, agents[m.Winner].Name)

	rows := pterm.TableData{{"Place", "Player", "Cards left"}}
	for place, userID := range m.FinishOrder() {
		seat := m.SeatOf(userID)
		rows = append(rows, []string{
			fmt.Sprintf("%d", place+1),
			agents[userID].Name,
			fmt.Sprintf("%d", len(seat.Hand)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Printfln("render results: %v", err)
	}
}

func cardString(cards []domain.Card) string {
	out := ""
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
