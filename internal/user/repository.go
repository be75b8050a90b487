package user

import (
	"context"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/session"
)

type Repository interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	FindByID(ctx context.Context, s *session.Session, id string) (*Account, error)
	List(ctx context.Context, s *session.Session, kind Kind) ([]Account, error)
	ToggleStatus(ctx context.Context, s *session.Session, id string) error
	Register(ctx context.Context, s *session.Session, reg Registration) error
	UpdateProfile(ctx context.Context, s *session.Session, id string, p ProfileUpdate) error
	ChangePassword(ctx context.Context, s *session.Session, p PasswordChange) error
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

type loginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

func (r *repository) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := r.api.Post(ctx, nil, "Users/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) FindByID(ctx context.Context, s *session.Session, id string) (*Account, error) {
	var a Account
	if err := r.api.Get(ctx, s, apiclient.Path("Users/%s", id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, s *session.Session, kind Kind) ([]Account, error) {
	accounts := []Account{}
	if err := r.api.Get(ctx, s, "Users/"+string(kind), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repository) ToggleStatus(ctx context.Context, s *session.Session, id string) error {
	return r.api.Put(ctx, s, apiclient.Path("Users/status/%s", id), nil, nil)
}

func (r *repository) Register(ctx context.Context, s *session.Session, reg Registration) error {
	return r.api.Post(ctx, s, "Users/register", reg, nil)
}

func (r *repository) UpdateProfile(ctx context.Context, s *session.Session, id string, p ProfileUpdate) error {
	return r.api.Put(ctx, s, apiclient.Path("Users/update/%s", id), p, nil)
}

func (r *repository) ChangePassword(ctx context.Context, s *session.Session, p PasswordChange) error {
	return r.api.Put(ctx, s, "Users/change-password", p, nil)
}
