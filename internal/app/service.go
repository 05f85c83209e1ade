package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jaminalder/codex-reversi/internal/domain"
	"github.com/jaminalder/codex-reversi/internal/engine"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// GameState is a snapshot of one hosted game.
type GameState struct {
	ID      string
	Game    domain.Game
	White   string
	Black   string
	Created time.Time
	Updated time.Time
}

// Seat returns the colour held by playerID, or domain.Empty for spectators.
func (gs GameState) Seat(playerID string) domain.Cell {
	switch {
	case playerID == "":
		return domain.Empty
	case gs.White == playerID:
		return domain.White
	case gs.Black == playerID:
		return domain.Black
	default:
		return domain.Empty
	}
}

type entry struct {
	eng     *engine.Engine
	white   string
	black   string
	created time.Time
	updated time.Time
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan GameState
	closed bool
}

// send delivers gs without blocking; false means the buffer is full.
func (s *subscriber) send(gs GameState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- gs:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Service manages games and subscribers.
type Service struct {
	mu     sync.Mutex
	width  int
	height int
	games  map[string]*entry
	subs   map[string]map[*subscriber]struct{}
}

// NewService creates a service hosting width x height games.
func NewService(width, height int) *Service {
	return &Service{
		width:  width,
		height: height,
		games:  make(map[string]*entry),
		subs:   make(map[string]map[*subscriber]struct{}),
	}
}

func (s *Service) snapshotLocked(id string, e *entry) GameState {
	return GameState{
		ID:      id,
		Game:    e.eng.Snapshot(),
		White:   e.white,
		Black:   e.black,
		Created: e.created,
		Updated: e.updated,
	}
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newGameID()
	now := time.Now()
	e := &entry{eng: engine.New(s.width, s.height), created: now, updated: now}
	s.games[id] = e
	gs := s.snapshotLocked(id, e)
	log.Info().Str("game", id).Int("width", s.width).Int("height", s.height).Msg("game created")
	return &gs, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := s.snapshotLocked(id, e)
	return &gs, true
}

// Join assigns a seat to the player if available; returns Empty for spectators.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	side := domain.Empty
	if e.white == "" || e.white == playerID {
		e.white = playerID
		side = domain.White
	} else if e.black == "" || e.black == playerID {
		e.black = playerID
		side = domain.Black
	}
	e.updated = time.Now()
	gs := s.snapshotLocked(id, e)
	log.Debug().Str("game", id).Str("player", playerID).Stringer("seat", side).Msg("player joined")
	return side, &gs, nil
}

// seatLocked validates that playerID holds a seat and is on turn.
func (s *Service) seatLocked(id, playerID string) (*entry, domain.Cell, error) {
	e, ok := s.games[id]
	if !ok {
		return nil, domain.Empty, ErrNotFound
	}
	var seat domain.Cell
	switch {
	case playerID != "" && e.white == playerID:
		seat = domain.White
	case playerID != "" && e.black == playerID:
		seat = domain.Black
	default:
		return e, domain.Empty, ErrNotAPlayer
	}
	if seat != e.eng.Turn() {
		return e, seat, ErrNotYourTurn
	}
	return e, seat, nil
}

// Play validates seat and turn, applies a move, updates timestamps, and broadcasts.
func (s *Service) Play(id, playerID string, x, y int) (*GameState, error) {
	s.mu.Lock()
	e, seat, err := s.seatLocked(id, playerID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if _, err := e.eng.Play(x, y); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("play (%d,%d): %w", x, y, err)
	}
	e.updated = time.Now()
	gs := s.snapshotLocked(id, e)
	s.broadcastLocked(id, gs)
	s.mu.Unlock()

	log.Debug().Str("game", id).Stringer("seat", seat).Int("x", x).Int("y", y).
		Int("white", gs.Game.Board.Score(domain.White)).
		Int("black", gs.Game.Board.Score(domain.Black)).
		Msg("move applied")
	return &gs, nil
}

// AutoPlay plays the greedy move on behalf of the seated player on turn.
func (s *Service) AutoPlay(id, playerID string) (*GameState, domain.Move, error) {
	s.mu.Lock()
	e, seat, err := s.seatLocked(id, playerID)
	if err != nil {
		s.mu.Unlock()
		return nil, domain.Move{}, err
	}
	m, _, err := e.eng.AutoPlay(seat)
	if err != nil {
		s.mu.Unlock()
		return nil, domain.Move{}, fmt.Errorf("automated move: %w", err)
	}
	e.updated = time.Now()
	gs := s.snapshotLocked(id, e)
	s.broadcastLocked(id, gs)
	s.mu.Unlock()

	log.Debug().Str("game", id).Stringer("seat", seat).Int("x", m.X).Int("y", m.Y).
		Int("captures", m.Captures).Msg("automated move applied")
	return &gs, m, nil
}

// Reset restores the opening position. Only seated players may reset.
func (s *Service) Reset(id, playerID string) (*GameState, error) {
	s.mu.Lock()
	e, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if playerID == "" || (e.white != playerID && e.black != playerID) {
		s.mu.Unlock()
		return nil, ErrNotAPlayer
	}
	e.eng.Reset()
	e.updated = time.Now()
	gs := s.snapshotLocked(id, e)
	s.broadcastLocked(id, gs)
	s.mu.Unlock()

	log.Info().Str("game", id).Str("player", playerID).Msg("game reset")
	return &gs, nil
}

// Hints returns the legal moves of the player on turn with their flip counts.
func (s *Service) Hints(id string) ([]domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.eng.LegalMoves(), nil
}

// broadcastLocked fans gs out while s.mu is held, so subscribers see states
// in the order they were committed. Sends never block: slow subscribers are
// closed and dropped.
func (s *Service) broadcastLocked(id string, gs GameState) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		if !sub.send(gs) {
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		log.Warn().Str("game", id).Int("dropped", dropped).Msg("dropped slow subscribers")
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan GameState, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan GameState, 1)}
	set[sub] = struct{}{}

	done := make(chan struct{})
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			close(done)
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()
	return sub.ch, unsub, nil
}
