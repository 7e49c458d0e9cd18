// Command tabletop runs two scripted demo matches, a few blackjack rounds
// and a gridrunner race, with simple bot players. It doubles as a smoke
// test of the engines end to end.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tabletop/blackjack"
	"tabletop/game"
	"tabletop/grid"
	"tabletop/gridrunner"
	"tabletop/random"
)

type config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Seed     int64  `env:"SEED" envDefault:"0"`
	Players  int    `env:"PLAYERS" envDefault:"3"`
	Rounds   int    `env:"BLACKJACK_ROUNDS" envDefault:"3"`
	HexBoard bool   `env:"HEX_BOARD" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = random.NewSeed()
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	log.WithField("seed", cfg.Seed).Info("tabletop demo")

	if err := playBlackjack(cfg, log); err != nil {
		return fmt.Errorf("blackjack: %w", err)
	}
	if err := raceGridRunner(cfg, log); err != nil {
		return fmt.Errorf("gridrunner: %w", err)
	}
	return nil
}

// playBlackjack runs cfg.Rounds rounds with bots that hit below 17.
func playBlackjack(cfg config, log *logrus.Logger) error {
	bj, err := blackjack.New(blackjack.Config{
		MinPlayers: cfg.Players,
		MaxPlayers: cfg.Players,
		Seed:       cfg.Seed,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	core := bj.Core()

	core.On(game.EventStateChanged, func(e game.Event) {
		log.WithField("payload", e.Payload).Debug("state changed")
	})

	players := make([]*game.Player, cfg.Players)
	for i := range players {
		players[i] = game.NewPlayer(fmt.Sprintf("bot-%d", i+1))
		if err := core.AddPlayer(players[i]); err != nil {
			return err
		}
	}
	if err := core.Start(); err != nil {
		return err
	}

	for round := 0; round < cfg.Rounds; round++ {
		if err := bj.DealRound(); err != nil {
			return err
		}
		for _, p := range players {
			for p.Status == game.StatusActive {
				score := blackjack.ScoreHand(p.Hand)
				if score.Value < 17 {
					if err := bj.Hit(p.ID()); err != nil {
						return err
					}
					continue
				}
				if err := bj.Stand(p.ID()); err != nil {
					return err
				}
			}
		}

		dealer, _ := bj.DealerScore()
		for _, p := range players {
			outcome, _ := bj.Result(p.ID())
			value, _ := bj.LastHandValue(p.ID())
			log.WithFields(logrus.Fields{
				"round":   bj.Round(),
				"player":  p.Name,
				"hand":    value,
				"dealer":  dealer.Value,
				"outcome": outcome,
				"score":   p.Score,
			}).Info("hand resolved")
		}
	}

	if err := core.End(); err != nil {
		return err
	}
	result, err := core.Result()
	if err != nil {
		return err
	}
	for _, pr := range result.Players {
		log.WithFields(logrus.Fields{"player": pr.Name, "score": pr.Score}).Info("table closed")
	}
	return nil
}

// raceGridRunner runs a race where each bot plays the first card that can
// reach somewhere, preferring targets closer to the nearest goal.
func raceGridRunner(cfg config, log *logrus.Logger) error {
	gridType := gridrunner.GridSquare
	if cfg.HexBoard {
		gridType = gridrunner.GridHex
	}

	goals := []gridrunner.Goal{{Position: grid.Position{X: 7, Y: 7}, Points: 100}}
	gr, err := gridrunner.New(gridrunner.Config{
		MinPlayers:     cfg.Players,
		MaxPlayers:     cfg.Players,
		GridType:       gridType,
		Width:          8,
		Height:         8,
		StartPositions: []grid.Position{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 0, Y: 7}},
		Goals:          goals,
		Checkpoints: []gridrunner.Checkpoint{
			{Position: grid.Position{X: 3, Y: 3}, Points: 10},
			{Position: grid.Position{X: 4, Y: 5}, Points: 10},
		},
		Blocked: []grid.Position{{X: 2, Y: 2}, {X: 5, Y: 5}, {X: 5, Y: 6}},
		Seed:    cfg.Seed,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	core := gr.Core()

	core.On(game.EventTurnChanged, func(e game.Event) {
		log.WithField("payload", e.Payload).Debug("turn changed")
	})

	for i := 0; i < cfg.Players; i++ {
		if err := core.AddPlayer(game.NewPlayer(fmt.Sprintf("runner-%d", i+1))); err != nil {
			return err
		}
	}
	if err := core.Start(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	board := gr.Board()

	// Safety valve against stalled bots once the deck runs dry.
	for turns := 0; core.State() == game.StatePlaying && turns < 500; turns++ {
		p := core.CurrentPlayer()
		played := false
		for _, c := range p.Hand.Cards() {
			targets := gr.ReachableFor(p.ID(), c.ID())
			if len(targets) == 0 {
				continue
			}
			best := targets[rng.Intn(len(targets))]
			for _, t := range targets {
				if board.Distance(t, goals[0].Position) < board.Distance(best, goals[0].Position) {
					best = t
				}
			}
			res := gr.PlayCard(p.ID(), c.ID(), best)
			if !res.Success {
				return fmt.Errorf("rejected move for %s: %s", p.Name, res.Message)
			}
			if res.ReachedGoal {
				log.WithField("player", p.Name).Info("goal reached")
			}
			played = true
			break
		}
		if !played {
			// No playable card: discard the turn.
			if err := core.NextTurn(); err != nil {
				return err
			}
		}
	}

	if core.State() != game.StateEnded {
		if err := core.End(); err != nil {
			return err
		}
	}
	result, err := core.Result()
	if err != nil {
		return err
	}
	for _, pr := range result.Players {
		log.WithFields(logrus.Fields{"player": pr.Name, "score": pr.Score}).Info("race finished")
	}
	return nil
}
