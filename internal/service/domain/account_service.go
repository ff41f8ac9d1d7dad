package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type AccountService interface {
	Register(name, email, password string) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	GetUser(userID uint) (*model.User, error)
}

// PasswordHasher is the credential collaborator, it owns one-way hashing
// and verification so the service never sees hash internals.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) error
}

type bcryptHasher struct{}

var _ PasswordHasher = (*bcryptHasher)(nil)

func NewBcryptHasher() *bcryptHasher {
	return &bcryptHasher{}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Compare(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

type accountService struct {
	repo   repository.UserRepo
	hasher PasswordHasher
}

var _ AccountService = (*accountService)(nil)

func NewAccountService(userRepo repository.UserRepo, hasher PasswordHasher) *accountService {
	return &accountService{
		repo:   userRepo,
		hasher: hasher,
	}
}

// Register creates a user with a hashed credential. Email uniqueness is
// case-insensitive, the stored email is always lowercased.
func (s *accountService) Register(name, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.repo.GetByEmail(email)
	if err == nil {
		return nil, service.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.repo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, service.ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) GetUser(userID uint) (*model.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
