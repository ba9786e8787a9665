package user

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	redisrepo "github.com/muhammadheryan/marketplace/repository/redis"
	userrepo "github.com/muhammadheryan/marketplace/repository/user"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserApp is the session/auth collaborator. The order core trusts the
// {userID, role} pair it derives and authorizes on role and ownership only.
type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (uint64, constant.Role, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	// Check if user exists by email or phone
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Register] err userRepo.Get phone", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	// admin accounts are provisioned out of band, never via register
	role := constant.Role(req.Role)
	if role != constant.RoleBuyer && role != constant.RoleSeller {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: string(hashedPassword),
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.RegisterResponse{
		Name:  userEntity.Name,
		Email: userEntity.Email,
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// Find user by email or phone
	filter := &model.UserFilter{}
	if isEmail(req.Identifier) {
		filter.Email = req.Identifier
	} else {
		filter.Phone = req.Identifier
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	token, jti, err := s.generateJWT(user.ID, user.Role)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Store session in Redis keyed by jti
	if err := s.redisRepo.SetSession(ctx, jti, user.ID, user.Role, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, constant.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, "", fmt.Errorf("token missing jti")
	}

	// Check Redis session key; the session is authoritative for the role
	redisUserID, role, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, "", fmt.Errorf("invalid or expired session")
	}
	if redisUserID != userID {
		return 0, "", fmt.Errorf("token does not match user session")
	}

	return userID, role, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID uint64, role constant.Role) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		Audience:  jwt.ClaimStrings{string(role)},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

// isEmail checks if identifier looks like an email
func isEmail(identifier string) bool {
	for _, r := range identifier {
		if r == '@' {
			return true
		}
	}
	return false
}
