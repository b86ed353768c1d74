package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"audiotech/internal/domain"
	"audiotech/internal/metrics"
	"audiotech/internal/repos"
	"audiotech/internal/validate"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("this email is already registered")
)

const DefaultAdminEmail = "admin@admin.com"

type AuthService struct {
	Users *repos.UserRepo
	// AdminEmail is the reserved address that always logs in as administrator.
	AdminEmail string
	Latency    Latency
	HashCost   int

	now func() time.Time
	mu  sync.Mutex // serializes writes to the credential list
}

func NewAuthService(users *repos.UserRepo, adminEmail string, lat Latency) *AuthService {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}
	return &AuthService{
		Users:      users,
		AdminEmail: repos.NormalizeEmail(adminEmail),
		Latency:    lat,
		HashCost:   12,
		now:        time.Now,
	}
}

func (s *AuthService) admin() domain.User {
	return domain.User{
		Email:      s.AdminEmail,
		Name:       "Administrator",
		Role:       domain.RoleAdmin,
		Phone:      "0909000111",
		Address:    "Headquarter, AudioTech Tower",
		JoinedDate: "2023-01-01",
	}
}

// Login resolves the credentials and stores the session record in the
// persistent scope when remember is set, otherwise in the per-session
// scope. The other scope is always cleared.
//
// The reserved admin address is accepted without a password check.
func (s *AuthService) Login(ctx context.Context, sc Scopes, email, password string, remember bool) (*domain.User, error) {
	defer observe("login")()
	pause(s.Latency.Op)

	normalized := repos.NormalizeEmail(email)
	var u *domain.User
	result := "success"
	if normalized == s.AdminEmail {
		admin := s.admin()
		u = &admin
		result = "admin"
	} else {
		creds, err := s.Users.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range creds {
			if repos.NormalizeEmail(c.Email) != normalized {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)) == nil {
				found := c.User
				u = &found
				break
			}
		}
	}
	if u == nil {
		metrics.Logins.WithLabelValues("fail").Inc()
		return nil, ErrBadCreds
	}

	remembered := repos.NewRememberedSessionRepo(sc.Local)
	session := repos.NewSessionRepo(sc.Session)
	if remember {
		if err := remembered.Put(ctx, *u); err != nil {
			return nil, err
		}
		if err := session.Clear(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := session.Put(ctx, *u); err != nil {
			return nil, err
		}
		if err := remembered.Clear(ctx); err != nil {
			return nil, err
		}
	}
	metrics.Logins.WithLabelValues(result).Inc()
	return u, nil
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (r RegisterRequest) Validate() error {
	if err := validate.Required(r.FirstName, r.LastName, r.Email, r.Password); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return validate.ErrPasswordMismatch
	}
	if err := validate.Password(r.Password); err != nil {
		return err
	}
	if _, ok := validate.Email(r.Email); !ok {
		return validate.ErrInvalidEmail
	}
	return nil
}

func (r RegisterRequest) Name() string {
	return strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName)
}

// Register appends a new ordinary user to the credential list.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	defer observe("register")()
	if err := req.Validate(); err != nil {
		return domain.User{}, err
	}
	pause(s.Latency.Register)

	email := repos.NormalizeEmail(req.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.HashCost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	creds, err := s.Users.All(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if email == s.AdminEmail || repos.IndexByEmail(creds, email) >= 0 {
		metrics.Registrations.WithLabelValues("conflict").Inc()
		return domain.User{}, ErrEmailTaken
	}
	u := domain.User{
		Name:       req.Name(),
		Email:      email,
		Role:       domain.RoleUser,
		JoinedDate: s.now().Format(time.DateOnly),
	}
	creds = append(creds, domain.Credential{User: u, Password: string(hash)})
	if err := s.Users.SaveAll(ctx, creds); err != nil {
		return domain.User{}, err
	}
	metrics.Registrations.WithLabelValues("success").Inc()
	return u, nil
}

// UpdateProfile rewrites the session record in whichever scope holds one
// and the matching credential. The stored password is kept.
func (s *AuthService) UpdateProfile(ctx context.Context, sc Scopes, u domain.User) (domain.User, error) {
	defer observe("update_profile")()
	pause(s.Latency.Op)

	remembered := repos.NewRememberedSessionRepo(sc.Local)
	cur, err := remembered.User(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if cur != nil {
		err = remembered.Put(ctx, u)
	} else {
		err = repos.NewSessionRepo(sc.Session).Put(ctx, u)
	}
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	creds, err := s.Users.All(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if i := repos.IndexByEmail(creds, u.Email); i >= 0 {
		creds[i] = domain.Credential{User: u, Password: creds[i].Password}
		if err := s.Users.SaveAll(ctx, creds); err != nil {
			return domain.User{}, err
		}
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sc Scopes) error {
	defer observe("logout")()
	pause(s.Latency.Logout)
	if err := repos.NewRememberedSessionRepo(sc.Local).Clear(ctx); err != nil {
		return err
	}
	return repos.NewSessionRepo(sc.Session).Clear(ctx)
}

// CurrentUser prefers the per-session record over the remembered one.
func (s *AuthService) CurrentUser(ctx context.Context, sc Scopes) (*domain.User, error) {
	u, err := repos.NewSessionRepo(sc.Session).User(ctx)
	if err != nil || u != nil {
		return u, err
	}
	return repos.NewRememberedSessionRepo(sc.Local).User(ctx)
}
