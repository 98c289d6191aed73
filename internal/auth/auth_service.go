package auth

import (
	"strings"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/user"
	"github.com/DhavalSuthar-24/tourney/pkg/password"
	"github.com/DhavalSuthar-24/tourney/pkg/token"
)

var (
	ErrUserExists         = common.Conflict("User already exists")
	ErrInvalidCredentials = common.Invalid("Invalid credentials")
	ErrRoleNotAllowed     = common.Invalid("Role must be PLAYER or ORGANIZER")
)

type TokenConfig struct {
	Secret        string
	Issuer        string
	ExpiryMinutes int
}

type Service struct {
	users  user.Repository
	tokens TokenConfig
	logger *zap.Logger
}

func NewService(users user.Repository, tokens TokenConfig, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Register creates an account. Admins cannot sign themselves up.
func (s *Service) Register(email, pass, rawRole string) (*user.User, error) {
	role := common.RolePlayer
	if strings.TrimSpace(rawRole) != "" {
		r, ok := common.ParseRole(rawRole)
		if !ok || r == common.RoleAdmin {
			return nil, ErrRoleNotAllowed
		}
		role = r
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !common.IsNotFound(err) {
		return nil, common.StoreFailure("look up user", err)
	}

	hashed, err := password.Hash(pass)
	if err != nil {
		return nil, common.StoreFailure("hash password", err)
	}

	u := &user.User{Email: email, Password: hashed, Role: role}
	if err := s.users.Create(u); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, common.StoreFailure("create user", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(email, pass string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if common.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, common.StoreFailure("look up user", err)
	}
	if !password.Check(u.Password, pass) {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := token.GenerateJWT(u.ID, string(u.Role), s.tokens.Secret, s.tokens.Issuer, s.tokens.ExpiryMinutes)
	if err != nil {
		return "", nil, common.StoreFailure("sign token", err)
	}
	return signed, u, nil
}
