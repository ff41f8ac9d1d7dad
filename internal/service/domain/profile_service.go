package domain

import (
	"strings"

	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/upload"
)

type ProfileService interface {
	UpdateProfile(userID uint, name string, picture []byte) error
}

type profileService struct {
	userRepo repository.UserRepo
	store    *upload.Store
}

var _ ProfileService = (*profileService)(nil)

func NewProfileService(userRepo repository.UserRepo, store *upload.Store) *profileService {
	return &profileService{
		userRepo: userRepo,
		store:    store,
	}
}

// UpdateProfile updates the display name and, when picture is non-nil,
// stores the already-processed JPEG under a fresh filename. The previous
// file is deleted best-effort after the row update, a stale file on disk
// is preferable to a dangling reference in the row.
func (s *profileService) UpdateProfile(userID uint, name string, picture []byte) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	profilePic := user.ProfilePic
	if picture != nil {
		filename, err := s.store.Save(userID, picture)
		if err != nil {
			return err
		}
		profilePic = filename
	}

	if err := s.userRepo.UpdateProfile(userID, strings.TrimSpace(name), profilePic); err != nil {
		if picture != nil {
			s.store.Remove(profilePic)
		}
		return err
	}

	if picture != nil && user.ProfilePic != "" {
		s.store.Remove(user.ProfilePic)
	}
	return nil
}
