package service

import (
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
)

// IUserService hands out the anonymous session id. There is no account
// system; the id only marks a returning browser.
type IUserService interface {
	Session() (*dto.SessionResponse, error)
	Reset() error
}

type userService struct {
	identityRepo contract.IdentityRepository
	logger       logger.ILogger
}

func NewUserService(identityRepo contract.IdentityRepository, log logger.ILogger) IUserService {
	return &userService{
		identityRepo: identityRepo,
		logger:       log,
	}
}

func (s *userService) Session() (*dto.SessionResponse, error) {
	userId, err := s.identityRepo.GetOrCreateUserId()
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{UserId: userId}, nil
}

func (s *userService) Reset() error {
	return s.identityRepo.Clear()
}
