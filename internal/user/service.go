package user

import (
	"context"
	"errors"
	"strings"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/audit"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
	"backoffice-console/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, s *session.Session) (*Account, error)
	List(ctx context.Context, s *session.Session, kind Kind, f Filter) ([]Account, error)
	ToggleStatus(ctx context.Context, s *session.Session, id string) error
	Register(ctx context.Context, s *session.Session, kind Kind, reg Registration) error
	UpdateProfile(ctx context.Context, s *session.Session, p ProfileUpdate) error
	ChangePassword(ctx context.Context, s *session.Session, current, next string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
}

func NewService(repo Repository, recorder audit.Recorder) Service {
	return &service{repo: repo, recorder: recorder}
}

func validateLogin(email, password string) error {
	v := utils.NewValidationError()
	switch {
	case strings.TrimSpace(email) == "":
		v.Add("email", "Email is required")
	case !strings.Contains(email, "@"):
		v.Add("email", "Enter a valid Email address")
	}
	if password == "" {
		v.Add("password", "Password is required")
	}
	return v.Err()
}

// Login checks the form locally, then exchanges the credentials for an API
// token. Only console roles get through.
func (svc *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("email", email))

	if err := validateLogin(email, password); err != nil {
		return nil, err
	}

	res, err := svc.repo.Login(ctx, strings.TrimSpace(email), password)
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		log.Warn("login rejected")
		credErr := &CredentialsError{}
		if errors.As(err, &apiErr) {
			credErr.Message = apiErr.Message
		}
		return nil, credErr
	case errors.Is(err, role.ErrUnknownRole):
		log.Warn("login for non-console role", zap.Error(err))
		return nil, ErrRoleNotAllowed
	case err != nil:
		log.Error("login failed", zap.Error(err))
		return nil, err
	}

	if !res.User.Role.Valid() || res.Token == "" {
		log.Warn("login response missing role or token")
		return nil, ErrRoleNotAllowed
	}

	log.Info("login succeeded", zap.String("user_id", res.User.ID), zap.Stringer("role", res.User.Role))
	return res, nil
}

func (svc *service) Profile(ctx context.Context, s *session.Session) (*Account, error) {
	return svc.repo.FindByID(ctx, s, s.User.ID)
}

func (svc *service) List(ctx context.Context, s *session.Session, kind Kind, f Filter) ([]Account, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if err := role.Require(s.User.Role, role.ManageUsers); err != nil {
		return nil, err
	}

	accounts, err := svc.repo.List(ctx, s, kind)
	if err != nil {
		return nil, err
	}

	out := make([]Account, 0, len(accounts))
	for i := range accounts {
		if f.match(&accounts[i]) {
			out = append(out, accounts[i])
		}
	}
	return out, nil
}

// ToggleStatus flips an account between active and inactive, or activates
// a pending customer.
func (svc *service) ToggleStatus(ctx context.Context, s *session.Session, id string) error {
	if err := role.Require(s.User.Role, role.ManageUsers); err != nil {
		return err
	}
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("account_id", id))

	if err := svc.repo.ToggleStatus(ctx, s, id); err != nil {
		log.Error("account status update failed", zap.Error(err))
		return err
	}

	log.Info("account status updated")
	svc.record(ctx, log, audit.NewEntry(s, audit.ActionToggleUser, id, ""))
	return nil
}

func (svc *service) record(ctx context.Context, log *zap.Logger, e audit.Entry) {
	if svc.recorder == nil {
		return
	}
	if err := svc.recorder.Record(ctx, e); err != nil {
		log.Error("failed to write audit entry", zap.Error(err))
	}
}

// Register creates a vendor or CSR account. The role comes from kind, never
// from the body.
func (svc *service) Register(ctx context.Context, s *session.Session, kind Kind, reg Registration) error {
	r, ok := registrationRoles[kind]
	if !ok {
		return ErrInvalidKind
	}
	if err := role.Require(s.User.Role, role.ManageUsers); err != nil {
		return err
	}
	if err := reg.validate(); err != nil {
		return err
	}
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Role = r

	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("kind", string(kind)))
	err := svc.repo.Register(ctx, s, reg)
	switch {
	case errors.Is(err, apiclient.ErrConflict):
		log.Warn("registration refused, email in use")
		return ErrEmailInUse
	case err != nil:
		log.Error("registration failed", zap.Error(err))
		return err
	}

	log.Info("account registered", zap.Stringer("role", r))
	svc.record(ctx, log, audit.NewEntry(s, audit.ActionRegisterUser, reg.Email, string(kind)))
	return nil
}

// UpdateProfile changes the signed-in user's own details.
func (svc *service) UpdateProfile(ctx context.Context, s *session.Session, p ProfileUpdate) error {
	if err := p.validate(); err != nil {
		return err
	}
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("user_id", s.User.ID))

	if err := svc.repo.UpdateProfile(ctx, s, s.User.ID, p); err != nil {
		log.Error("profile update failed", zap.Error(err))
		return err
	}
	log.Info("profile updated")
	svc.record(ctx, log, audit.NewEntry(s, audit.ActionUpdateProfile, s.User.ID, ""))
	return nil
}

// ChangePassword is always for the signed-in user's email.
func (svc *service) ChangePassword(ctx context.Context, s *session.Session, current, next string) error {
	p := PasswordChange{Email: s.User.Email, CurrentPassword: current, NewPassword: next}
	if err := p.validate(); err != nil {
		return err
	}
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("user_id", s.User.ID))

	if err := svc.repo.ChangePassword(ctx, s, p); err != nil {
		log.Error("password change failed", zap.Error(err))
		return err
	}
	log.Info("password changed")
	svc.record(ctx, log, audit.NewEntry(s, audit.ActionChangePassword, s.User.ID, ""))
	return nil
}
