package inmem

import (
	"fmt"

	"github.com/dekarrin/relang/server/dao"
)

type store struct {
	users *InMemoryUsersRepository
	lib   *InMemoryLibraryRepository
}

func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		lib:   NewLibraryRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Library() dao.LibraryRepository {
	return s.lib
}

func (s *store) Close() error {
	var err error

	nextErr := s.users.Close()
	if nextErr != nil {
		err = nextErr
	}
	if libErr := s.lib.Close(); libErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, libErr)
		} else {
			err = libErr
		}
	}

	return err
}
