package domain

import (
	"context"
	"errors"
)

type UpsertProfileRequest struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	LogoURL     string       `json:"logoUrl"`
	TIN         string       `json:"tin"`
	MomoNumber  string       `json:"momoNumber"`
	MomoNetwork string       `json:"momoNetwork"`
	Preferences *Preferences `json:"preferences"`
}

type Service interface {
	Get(ctx context.Context) (Profile, error)
	Upsert(ctx context.Context, req UpsertProfileRequest) (Profile, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrNotFound       = errors.New("not_found")
)
