package experiments

import (
	"fmt"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

// RunVariantExperiment pits the reference search against the corrected one
// with the same iteration budget.
func RunVariantExperiment(dir string, games, iterations int) (string, error) {
	reference := metrics.AgentConfig{ID: 1, Variant: searcher.Reference.String(), Iterations: iterations, Seed: 1000}
	corrected := metrics.AgentConfig{ID: 2, Variant: searcher.Corrected.String(), Iterations: iterations, Seed: 2000}
	configs := []metrics.AgentConfig{reference, corrected}

	return Run("variants", dir, configs, [][2]metrics.AgentConfig{{reference, corrected}}, games)
}

// Run plays games per matchup, alternating which config moves first, and
// stores configs, games and moves as CSV files. It returns the directory
// the files were written to.
func Run(name, dir string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	wins := map[int]int{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate starting agent
			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}

			winner, gameMetric, moveMetrics, err := runGame(first, second, i)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			switch winner {
			case game.PlayerA:
				wins[first.ID]++
			case game.PlayerB:
				wins[second.ID]++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().
			Int("agent1", matchup[0].ID).
			Int("agent1_wins", wins[matchup[0].ID]).
			Int("agent2", matchup[1].ID).
			Int("agent2_wins", wins[matchup[1].ID]).
			Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := store(writer, configs, gameRecords, moveRecords); err != nil {
		return "", err
	}
	return writer.BaseDir(), nil
}

func store(writer *metrics.Writer, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return nil
}

// runGame plays one game with config1 as PlayerA and config2 as PlayerB.
func runGame(config1, config2 metrics.AgentConfig, index int) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	mcts1, err := createMCTS(config1, index)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	mcts2, err := createMCTS(config2, index)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocalEngine([2]agent.Agent{
		agent.NewEvaluationAgent(mcts1),
		agent.NewEvaluationAgent(mcts2),
	})
	return e.Run()
}

func createMCTS(config metrics.AgentConfig, index int) (*searcher.MCTS, error) {
	variant, err := searcher.ParseVariant(config.Variant)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}

	options := []searcher.Option{
		searcher.WithVariant(variant),
		searcher.WithSeed(config.Seed + uint64(index)),
		searcher.WithMetrics(),
	}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	return searcher.NewMCTS(options...), nil
}
