package usecase

import (
	"errors"
	"strings"
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type CreateUserInput struct {
	Name       string     `json:"name" validate:"required,max=255"`
	Email      string     `json:"email" validate:"required,email,max=191"`
	Password   string     `json:"password" validate:"required,min=8,max=72"`
	Role       model.Role `json:"role" validate:"required"`
	TenantCode string     `json:"tenant_code" validate:"omitempty,max=64"`
}

type UserUsecase struct {
	users      repository.UserRepository
	tenants    repository.TenantRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewUserUsecase(users repository.UserRepository, tenants repository.TenantRepository, secret string, accessTTL, refreshTTL time.Duration, log *zap.Logger) *UserUsecase {
	return &UserUsecase{
		users:      users,
		tenants:    tenants,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (u *UserUsecase) Login(email, password string) (*TokenPair, *model.User, error) {
	// 1. Find the user by email
	user, err := u.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrUserNotFound) {
		return nil, nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	// 2. Compare the password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		u.log.Debug("login rejected", zap.String("email", user.Email))
		return nil, nil, apperr.ErrInvalidCredentials
	}

	// 3. Issue the token pair
	pair, err := u.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a refresh token for a new pair. The user is reloaded so role
// changes take effect.
func (u *UserUsecase) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := ParseToken(refreshToken, u.secret, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.ErrInvalidToken
	}
	user, err := u.users.FindByID(uint(userID))
	if errors.Is(err, apperr.ErrUserNotFound) {
		return nil, apperr.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return u.issue(user)
}

func (u *UserUsecase) issue(user *model.User) (*TokenPair, error) {
	now := time.Now()
	tenant := ""
	if user.Tenant != nil {
		tenant = user.Tenant.Code
	}

	expiresAt := now.Add(u.accessTTL)
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"tenant":  tenant,
		"type":    TokenTypeAccess,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})
	accessToken, err := access.SignedString(u.secret)
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"type":    TokenTypeRefresh,
		"iat":     now.Unix(),
		"exp":     now.Add(u.refreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString(u.secret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: expiresAt}, nil
}

// CreateUser applies the creation rules: SUPER_ADMIN may create anyone, an ADMIN only
// CASHIERs of its own tenant.
func (u *UserUsecase) CreateUser(actor Actor, input CreateUserInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "unknown role %q", input.Role)
	}

	var tenantID *uint
	switch actor.Role {
	case model.RoleSuperAdmin:
		if input.Role != model.RoleSuperAdmin {
			if input.TenantCode == "" {
				return nil, apperr.Wrap(apperr.ErrInvalidInput, "tenant_code is required for role %s", input.Role)
			}
			tenant, err := u.tenants.FindByCode(input.TenantCode)
			if err != nil {
				return nil, err
			}
			tenantID = &tenant.ID
		}
	case model.RoleAdmin:
		if input.Role != model.RoleCashier {
			return nil, apperr.Wrap(apperr.ErrForbidden, "admins can only create cashiers")
		}
		creator, err := u.users.FindByID(actor.UserID)
		if err != nil {
			return nil, err
		}
		if creator.TenantID == nil {
			return nil, apperr.ErrForbidden
		}
		tenantID = creator.TenantID
	default:
		return nil, apperr.ErrForbidden
	}

	return u.createUser(input.Name, input.Email, input.Password, input.Role, tenantID)
}

func (u *UserUsecase) createUser(name, email, password string, role model.Role, tenantID *uint) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := u.users.FindByEmail(email); err == nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "email %s is already registered", email)
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := u.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user for a SUPER_ADMIN and the caller's tenant otherwise.
func (u *UserUsecase) ListUsers(actor Actor) ([]model.User, error) {
	if actor.IsSuperAdmin() {
		return u.users.GetAll(nil)
	}
	creator, err := u.users.FindByID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if creator.TenantID == nil {
		return nil, apperr.ErrForbidden
	}
	return u.users.GetAll(creator.TenantID)
}

// ParseToken verifies an HS256 token signed with secret and checks its type claim.
func ParseToken(tokenString string, secret []byte, tokenType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != tokenType {
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}
