// Package session drives a single game from setup to completion: the
// turn order, the roll/move/end-turn cycle, item pickup and use, and the
// finishing ranking.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
	"github.com/arcadia-games/dicewalk/internal/game/maze"
	"github.com/arcadia-games/dicewalk/internal/game/player"
)

// Phase is the stage of the active player's turn.
type Phase int

// Turn phases, in the order a turn passes through them.
const (
	// PhaseAwaitingRoll accepts only Roll.
	PhaseAwaitingRoll Phase = iota
	// PhaseMoving accepts Move until the rolled steps are spent or the
	// goal is reached.
	PhaseMoving
	// PhaseMoved accepts UseItem and EndTurn.
	PhaseMoved
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingRoll:
		return "awaiting roll"
	case PhaseMoving:
		return "moving"
	case PhaseMoved:
		return "moved"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Sentinel errors for turn-order violations. All are recoverable: the
// caller reports the rejection and the game state is unchanged.
var (
	// ErrWrongPhase rejects an action the current phase does not accept.
	ErrWrongPhase = errors.New("action not allowed in current phase")
	// ErrGameOver rejects any action after the game has finished.
	ErrGameOver = errors.New("game is over")
	// ErrNoSuchPlayer rejects an out-of-range player index.
	ErrNoSuchPlayer = errors.New("no such player")
)

// Game holds the full state of one running game. It is single-threaded:
// one player acts at a time and the caller serializes all method calls.
type Game struct {
	board   *maze.Map
	players []*player.Player
	roller  *dice.Roller
	logger  *zap.Logger

	active    int
	phase     Phase
	lastRoll  int
	remaining int
	winners   []int
	over      bool
	turns     int
}

// New assembles a game from a generated map and the players spawned on
// its starting positions. Player zero moves first. All die rolls draw
// from src.
//
// Precondition: board, src, and logger must be non-nil, and players must
// hold one player per starting position, at least two.
func New(board *maze.Map, players []*player.Player, src dice.Source, logger *zap.Logger) *Game {
	if board == nil {
		panic("session: New: nil map")
	}
	if src == nil {
		panic("session: New: nil source")
	}
	if logger == nil {
		panic("session: New: nil logger")
	}
	if len(players) < 2 {
		panic(fmt.Sprintf("session: New: need at least 2 players, got %d", len(players)))
	}
	if len(players) != len(board.StartingPositions()) {
		panic(fmt.Sprintf("session: New: %d players for %d starting positions",
			len(players), len(board.StartingPositions())))
	}
	logger.Info("game started",
		zap.Int("players", len(players)),
		zap.Int("width", board.Width()),
		zap.Int("height", board.Height()),
	)
	return &Game{
		board:   board,
		players: players,
		roller:  dice.NewLoggedRoller(src, logger),
		logger:  logger,
		phase:   PhaseAwaitingRoll,
	}
}

// Board returns the map the game is played on.
func (g *Game) Board() *maze.Map {
	return g.board
}

// Players returns the participants in seat order. Callers must not
// mutate the returned slice.
func (g *Game) Players() []*player.Player {
	return g.players
}

// ActiveIndex returns the seat index of the player whose turn it is.
func (g *Game) ActiveIndex() int {
	return g.active
}

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() *player.Player {
	return g.players[g.active]
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// LastRoll returns the value rolled this turn, or 0 before the roll.
func (g *Game) LastRoll() int {
	return g.lastRoll
}

// Remaining returns the unspent steps of this turn's roll.
func (g *Game) Remaining() int {
	return g.remaining
}

// Winners returns the seat indices of players who reached the goal, in
// finishing order.
func (g *Game) Winners() []int {
	out := make([]int, len(g.winners))
	copy(out, g.winners)
	return out
}

// Over reports whether the game has finished. The game finishes when all
// but one player have reached the goal.
func (g *Game) Over() bool {
	return g.over
}

// Turns returns the number of completed turns.
func (g *Game) Turns() int {
	return g.turns
}

// FinalRanking returns the complete standing once the game is over: the
// winners in finishing order followed by the one player left on the
// board. Before the game is over it returns false.
func (g *Game) FinalRanking() ([]int, bool) {
	if !g.over {
		return nil, false
	}
	ranking := make([]int, 0, len(g.players))
	ranking = append(ranking, g.winners...)
	for i := range g.players {
		if !g.isWinner(i) {
			ranking = append(ranking, i)
		}
	}
	return ranking, true
}

// Roll rolls the active player's die and opens the movement phase with
// the rolled number of steps.
func (g *Game) Roll() (int, error) {
	if g.over {
		return 0, ErrGameOver
	}
	if g.phase != PhaseAwaitingRoll {
		return 0, fmt.Errorf("roll during %s: %w", g.phase, ErrWrongPhase)
	}
	rolled := g.roller.Roll(g.ActivePlayer().Die())
	g.lastRoll = rolled
	g.remaining = rolled
	g.phase = PhaseMoving
	g.logger.Info("die rolled",
		zap.String("player", g.ActivePlayer().Name()),
		zap.Int("rolled", rolled),
	)
	return rolled, nil
}

// Move spends one of the rolled steps on moving the active player in
// dir. A blocked step returns player.ErrBlocked and costs nothing.
//
// Landing on a cell holding an item picks the item up. Landing on the
// goal ranks the player, forfeits the remaining steps, and closes the
// movement phase.
func (g *Game) Move(dir maze.Direction) error {
	if g.over {
		return ErrGameOver
	}
	if g.phase != PhaseMoving {
		return fmt.Errorf("move during %s: %w", g.phase, ErrWrongPhase)
	}
	p := g.ActivePlayer()
	if err := p.Step(dir, g.board); err != nil {
		return err
	}
	pos := p.Position()
	if it, ok := g.board.TakeItem(pos); ok {
		p.PickUp(it)
		g.logger.Info("item picked up",
			zap.String("player", p.Name()),
			zap.String("item", it.ShortDescription()),
		)
	}
	if g.board.CellAt(pos).Kind == maze.KindGoal {
		g.winners = append(g.winners, g.active)
		g.remaining = 0
		g.phase = PhaseMoved
		g.logger.Info("player reached the goal",
			zap.String("player", p.Name()),
			zap.Int("place", len(g.winners)),
		)
		return nil
	}
	g.remaining--
	if g.remaining == 0 {
		g.phase = PhaseMoved
	}
	return nil
}

// PreviewItem shows what the active player's item at itemIndex would do
// to the die of the player at targetIndex, without committing anything.
func (g *Game) PreviewItem(itemIndex, targetIndex int) (before, after dice.WeightedDie, err error) {
	if targetIndex < 0 || targetIndex >= len(g.players) {
		return dice.WeightedDie{}, dice.WeightedDie{},
			fmt.Errorf("target %d of %d players: %w", targetIndex, len(g.players), ErrNoSuchPlayer)
	}
	user := g.ActivePlayer()
	items := user.Items()
	if itemIndex < 0 || itemIndex >= len(items) {
		return dice.WeightedDie{}, dice.WeightedDie{},
			fmt.Errorf("preview item %d: %w", itemIndex, player.ErrNoSuchItem)
	}
	before = g.players[targetIndex].Die()
	after = before
	items[itemIndex].UseOnDie(&after)
	return before, after, nil
}

// UseItem commits the active player's item at itemIndex to the player at
// targetIndex and ends the turn. Items are usable only after moving, and
// the target may be any player including the user.
func (g *Game) UseItem(itemIndex, targetIndex int) error {
	if g.over {
		return ErrGameOver
	}
	if g.phase != PhaseMoved {
		return fmt.Errorf("use item during %s: %w", g.phase, ErrWrongPhase)
	}
	if targetIndex < 0 || targetIndex >= len(g.players) {
		return fmt.Errorf("target %d of %d players: %w", targetIndex, len(g.players), ErrNoSuchPlayer)
	}
	user := g.ActivePlayer()
	it, err := user.TakeItem(itemIndex)
	if err != nil {
		return err
	}
	target := g.players[targetIndex]
	it.Use(target)
	g.logger.Info("item used",
		zap.String("player", user.Name()),
		zap.String("item", it.ShortDescription()),
		zap.String("target", target.Name()),
	)
	g.endTurn()
	return nil
}

// EndTurn closes the active player's turn. When all but one player have
// finished, the game ends instead of passing the turn.
func (g *Game) EndTurn() error {
	if g.over {
		return ErrGameOver
	}
	if g.phase != PhaseMoved {
		return fmt.Errorf("end turn during %s: %w", g.phase, ErrWrongPhase)
	}
	g.endTurn()
	return nil
}

func (g *Game) isWinner(index int) bool {
	for _, w := range g.winners {
		if w == index {
			return true
		}
	}
	return false
}

// endTurn resets the per-turn state and hands the turn to the next seat
// still on the board, or ends the game when only one such seat remains.
func (g *Game) endTurn() {
	g.ActivePlayer().EndTurn()
	g.lastRoll = 0
	g.remaining = 0
	g.turns++
	if len(g.winners) == len(g.players)-1 {
		g.over = true
		g.logger.Info("game over",
			zap.Int("turns", g.turns),
			zap.Ints("winners", g.winners),
		)
		return
	}
	for {
		g.active = (g.active + 1) % len(g.players)
		if !g.isWinner(g.active) {
			break
		}
	}
	g.phase = PhaseAwaitingRoll
	g.logger.Debug("turn started",
		zap.String("player", g.ActivePlayer().Name()),
	)
}
