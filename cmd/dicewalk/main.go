// Package main runs a complete game of dicewalk: it generates a map,
// seats automated players on it, and plays the roll/move/use-item cycle
// until all but one have reached the goal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/arcadia-games/dicewalk/internal/config"
	"github.com/arcadia-games/dicewalk/internal/game/dice"
	"github.com/arcadia-games/dicewalk/internal/game/item"
	"github.com/arcadia-games/dicewalk/internal/game/maze"
	"github.com/arcadia-games/dicewalk/internal/game/npc"
	"github.com/arcadia-games/dicewalk/internal/game/player"
	"github.com/arcadia-games/dicewalk/internal/game/session"
	"github.com/arcadia-games/dicewalk/internal/observability"
	"github.com/arcadia-games/dicewalk/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Int64("seed", 0, "deterministic RNG seed (0 = crypto randomness)")
	record := flag.Bool("record", false, "record the finished game to the database")
	showMap := flag.Bool("show-map", true, "print the generated map before playing")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting dicewalk",
		zap.Int("players", cfg.Game.Players),
		zap.Int("width", cfg.Game.Width),
		zap.Int("height", cfg.Game.Height),
		zap.Float64("item_density", cfg.Game.ItemDensity),
		zap.Int("travel_distance", cfg.Game.TravelDistance),
		zap.Int64("seed", *seed),
	)

	var src dice.Source
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	} else {
		src = dice.NewCryptoSource()
	}

	table := item.DefaultSpawnTable()
	if cfg.Game.SpawnTable != "" {
		table, err = item.LoadSpawnTable(cfg.Game.SpawnTable)
		if err != nil {
			logger.Fatal("loading spawn table", zap.Error(err))
		}
		logger.Info("spawn table loaded",
			zap.String("path", cfg.Game.SpawnTable),
			zap.Int("kinds", len(table.Entries)),
		)
	}

	genStart := time.Now()
	board, err := maze.Generate(maze.GenerateConfig{
		Width:          cfg.Game.Width,
		Height:         cfg.Game.Height,
		Players:        cfg.Game.Players,
		ItemDensity:    cfg.Game.ItemDensity,
		TravelDistance: cfg.Game.TravelDistance,
	}, item.NewGenerator(src, table), src)
	if err != nil {
		logger.Fatal("generating map", zap.Error(err))
	}
	logger.Info("map generated", zap.Duration("elapsed", time.Since(genStart)))

	if *showMap {
		fmt.Print(board.Render())
	}

	players := make([]*player.Player, 0, cfg.Game.Players)
	for i, pos := range board.StartingPositions() {
		players = append(players, player.SpawnAt(pos, i))
	}

	game := session.New(board, players, src, logger)
	runGame(game)

	ranking, _ := game.FinalRanking()
	for place, seat := range ranking {
		fmt.Printf("%d: %s\n", place+1, players[seat].Name())
	}
	logger.Info("game finished",
		zap.Ints("ranking", ranking),
		zap.Int("turns", game.Turns()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if *record {
		if err := recordResult(cfg, game, ranking, logger); err != nil {
			logger.Fatal("recording result", zap.Error(err))
		}
	}
}

// runGame plays the game to completion with the automated strategies:
// shortest-path movement and highest-gain item use on the mover's own
// die.
func runGame(game *session.Game) {
	for !game.Over() {
		switch game.Phase() {
		case session.PhaseAwaitingRoll:
			if _, err := game.Roll(); err != nil {
				panic(fmt.Sprintf("main: roll: %v", err))
			}
		case session.PhaseMoving:
			dir := npc.ShortestPath.ComputeMove(game.ActivePlayer().Position(), game.Board())
			if err := game.Move(dir); err != nil {
				panic(fmt.Sprintf("main: move %v: %v", dir, err))
			}
		case session.PhaseMoved:
			if idx, ok := npc.HighestGain.ChooseItem(game.ActivePlayer()); ok {
				if err := game.UseItem(idx, game.ActiveIndex()); err != nil {
					panic(fmt.Sprintf("main: use item %d: %v", idx, err))
				}
			} else if err := game.EndTurn(); err != nil {
				panic(fmt.Sprintf("main: end turn: %v", err))
			}
		}
	}
}

func recordResult(cfg config.Config, game *session.Game, ranking []int, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	repo := postgres.NewResultRepository(pool.DB())
	stored, err := repo.Record(ctx, postgres.GameResult{
		MapWidth:       cfg.Game.Width,
		MapHeight:      cfg.Game.Height,
		Players:        cfg.Game.Players,
		ItemDensity:    cfg.Game.ItemDensity,
		TravelDistance: cfg.Game.TravelDistance,
		Ranking:        ranking,
		Turns:          game.Turns(),
	})
	if err != nil {
		return err
	}

	logger.Info("result recorded", zap.String("id", stored.ID.String()))
	return nil
}
