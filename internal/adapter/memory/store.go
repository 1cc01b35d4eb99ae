// Package memory is an in-process store for local runs and tests. Transactions are serialised and
// applied to a private copy of the state, which replaces the shared state only on commit.
package memory

import (
	"sync"
	"time"

	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

var (
	_ secondary.RoundRepository       = (*Store)(nil)
	_ secondary.QuestionRepository    = (*Store)(nil)
	_ secondary.SubmissionRepository  = (*Store)(nil)
	_ secondary.LeaderboardRepository = (*Store)(nil)
	_ secondary.UserPort              = (*Store)(nil)
	_ secondary.UnitOfWork            = (*Store)(nil)
)

type pairKey struct {
	a, b int64
}

type state struct {
	seq           int64
	teams         map[int64]string
	users         map[int64]domain.User
	rounds        map[int64]domain.Round
	questions     map[int64]domain.Question
	testCases     map[int64]domain.TestCase
	buggyCodes    map[int64]domain.BuggyCode
	userQuestions map[pairKey]domain.UserQuestion
	leaderboards  map[pairKey]domain.LeaderboardRow
	submissions   []domain.Submission
}

func newState() *state {
	return &state{
		teams:         make(map[int64]string),
		users:         make(map[int64]domain.User),
		rounds:        make(map[int64]domain.Round),
		questions:     make(map[int64]domain.Question),
		testCases:     make(map[int64]domain.TestCase),
		buggyCodes:    make(map[int64]domain.BuggyCode),
		userQuestions: make(map[pairKey]domain.UserQuestion),
		leaderboards:  make(map[pairKey]domain.LeaderboardRow),
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	cp := newState()
	cp.seq = s.seq
	for k, v := range s.teams {
		cp.teams[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.rounds {
		cp.rounds[k] = v
	}
	for k, v := range s.questions {
		cp.questions[k] = v
	}
	for k, v := range s.testCases {
		cp.testCases[k] = v
	}
	for k, v := range s.buggyCodes {
		cp.buggyCodes[k] = v
	}
	for k, v := range s.userQuestions {
		cp.userQuestions[k] = v
	}
	for k, v := range s.leaderboards {
		cp.leaderboards[k] = v
	}
	cp.submissions = append(make([]domain.Submission, 0, len(s.submissions)), s.submissions...)
	return cp
}

type Store struct {
	// writeMu serialises every write, transactional or not
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
	now     func() time.Time
}

func New() *Store {
	return &Store{
		st:  newState(),
		now: time.Now,
	}
}

// read runs fn against the committed state
func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

// write applies fn to a copy of the state and commits it when fn returns nil
func (s *Store) write(fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// AddTeam stores a team and returns its id
func (s *Store) AddTeam(name string) int64 {
	var id int64
	_ = s.write(func(st *state) error {
		id = st.nextID()
		st.teams[id] = name
		return nil
	})
	return id
}

// AddUser stores a user, assigning an id when it has none
func (s *Store) AddUser(user domain.User) *domain.User {
	_ = s.write(func(st *state) error {
		if user.ID == 0 {
			user.ID = st.nextID()
		}
		if user.Role == "" {
			user.Role = domain.RoleParticipant
		}
		st.users[user.ID] = user
		return nil
	})
	return &user
}

func (s *Store) teamName(st *state, u domain.User) string {
	if u.TeamID != nil {
		if name, ok := st.teams[*u.TeamID]; ok {
			return name
		}
	}
	return u.Username
}
