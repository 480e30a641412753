package service

import (
	"context"
	"errors"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/state"
	"baketrack-backend/pkg/validator"
)

var ErrProfileSaveFailed = errors.New("failed to save profile to spreadsheet")

type ProfileService interface {
	Update(ctx context.Context, req *model.Profile) error
}

type profileService struct {
	sheets SheetAPI
	state  *state.Store
}

func NewProfileService(sheets SheetAPI, stateStore *state.Store) ProfileService {
	return &profileService{sheets: sheets, state: stateStore}
}

// Update writes the display profile (name, email, photo). The password
// column is never written from here.
func (s *profileService) Update(ctx context.Context, req *model.Profile) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return errors.New("validation failed: field '" + firstErr.FailedField + "' failed on tag '" + firstErr.Tag + "'")
	}
	if !s.sheets.UpdateProfile(ctx, *req) {
		return ErrProfileSaveFailed
	}
	s.state.Refresh(ctx)
	return nil
}
