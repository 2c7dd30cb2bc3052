package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"connect4/agent"
	"connect4/display"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type config struct {
	mode        string
	iterations  int
	duration    time.Duration
	seed        uint64
	variant     searcher.Variant
	temperature float64
	humanFirst  bool
	games       int
	out         string
}

func main() {
	mode := flag.String("mode", "play", "One of play, selfplay or experiment")
	iterations := flag.Int("iterations", searcher.DefaultIterations, "Search iterations per move")
	duration := flag.Duration("duration", 0, "Wall clock limit per move, 0 for none")
	seed := flag.Uint64("seed", 0, "Seed for the search generator, 0 seeds from the clock")
	variant := flag.String("variant", searcher.Reference.String(), "Search variant: reference or corrected")
	temperature := flag.Float64("temperature", 0, "Sample moves from visit counts at this temperature, 0 plays the most visited move")
	humanFirst := flag.Bool("human-first", true, "Human plays first in play mode")
	games := flag.Int("games", experiments.NumGames, "Games per matchup in experiment mode")
	out := flag.String("out", "results", "Output directory for experiment mode")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	v, err := searcher.ParseVariant(*variant)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid variant")
	}

	cfg := config{
		mode:        *mode,
		iterations:  *iterations,
		duration:    *duration,
		seed:        *seed,
		variant:     v,
		temperature: *temperature,
		humanFirst:  *humanFirst,
		games:       *games,
		out:         *out,
	}
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.mode)
	}
}

func run(cfg config) error {
	switch cfg.mode {
	case "play":
		human := agent.NewHumanAgent(os.Stdin, os.Stdout)
		agents := [2]agent.Agent{human, createAgent(cfg, 0)}
		if !cfg.humanFirst {
			agents[0], agents[1] = agents[1], agents[0]
		}
		return playGame(agents)
	case "selfplay":
		return playGame([2]agent.Agent{createAgent(cfg, 0), createAgent(cfg, 1)})
	case "experiment":
		dir, err := experiments.RunVariantExperiment(cfg.out, cfg.games, cfg.iterations)
		if err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", dir)
		return nil
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

func playGame(agents [2]agent.Agent) error {
	render := func(state game.GameState) {
		if err := display.Render(os.Stdout, state); err != nil {
			log.Error().Err(err).Msg("failed to render board")
		}
		fmt.Println()
	}

	e := engine.NewLocalEngine(agents, engine.WithObserver(render))
	render(e.State())

	winner, _, _, err := e.Run()
	if err != nil {
		return err
	}
	if winner == game.Empty {
		fmt.Println("Draw!")
	} else {
		fmt.Printf("Player %s (%c) wins!\n", winner, winner.Mark())
	}
	return nil
}

// createAgent builds a search agent. offset keeps the generators of two
// seeded agents apart.
func createAgent(cfg config, offset uint64) agent.Agent {
	options := []searcher.Option{
		searcher.WithIterations(cfg.iterations),
		searcher.WithVariant(cfg.variant),
	}
	if cfg.duration > 0 {
		options = append(options, searcher.WithDuration(cfg.duration))
	}
	if cfg.seed != 0 {
		options = append(options, searcher.WithSeed(cfg.seed+offset))
	}
	mcts := searcher.NewMCTS(options...)

	if cfg.temperature > 0 {
		seed := uint64(time.Now().UnixNano())
		if cfg.seed != 0 {
			seed = cfg.seed + offset + 1<<32
		}
		return agent.NewSamplingAgent(mcts, cfg.temperature, rand.New(rand.NewSource(seed)))
	}
	return agent.NewEvaluationAgent(mcts)
}
