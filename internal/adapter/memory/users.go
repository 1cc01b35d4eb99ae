package memory

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

func (s *Store) GetByID(_ context.Context, id int64) (*domain.User, error) {
	var out *domain.User
	s.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	var out *domain.User
	s.read(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				out = &u
				return
			}
		}
	})
	return out, nil
}
