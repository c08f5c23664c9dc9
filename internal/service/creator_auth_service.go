package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/viewspecash/viewspecash/internal/cache"
	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CreatorAuthService 创作者认证服务
// 与管理员认证隔离：独立密钥、独立 Claims，避免两类 Token 互换使用
type CreatorAuthService struct {
	cfg         *config.Config
	creatorRepo repository.CreatorRepository
}

// NewCreatorAuthService 创建创作者认证服务实例
func NewCreatorAuthService(cfg *config.Config, creatorRepo repository.CreatorRepository) *CreatorAuthService {
	return &CreatorAuthService{
		cfg:         cfg,
		creatorRepo: creatorRepo,
	}
}

// CreatorJWTClaims 创作者 JWT 声明
type CreatorJWTClaims struct {
	CreatorID    uint   `json:"creator_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册入参
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Register 创作者注册，初始资质状态 none
func (s *CreatorAuthService) Register(input RegisterInput) (*models.Creator, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.creatorRepo.GetByEmail(email)
	if err != nil {
		return nil, storageErr(err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	creator := &models.Creator{
		Email:         email,
		PasswordHash:  string(hash),
		DisplayName:   strings.TrimSpace(input.DisplayName),
		VettingStatus: constants.VettingStatusNone,
		Balance:       models.ZeroMoney(),
		TotalEarnings: models.ZeroMoney(),
	}
	if err := s.creatorRepo.Create(creator); err != nil {
		return nil, storageErr(err)
	}
	return creator, nil
}

// Login 创作者登录
func (s *CreatorAuthService) Login(email, password string) (*models.Creator, string, time.Time, error) {
	creator, err := s.creatorRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, storageErr(err)
	}
	if creator == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creator.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(creator)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	creator.LastLoginAt = &now
	if err := s.creatorRepo.Update(creator); err != nil {
		return nil, "", time.Time{}, storageErr(err)
	}
	_ = cache.SetCreatorAuthState(context.Background(), cache.BuildCreatorAuthState(creator))

	return creator, token, expiresAt, nil
}

// GenerateJWT 生成创作者 JWT Token
func (s *CreatorAuthService) GenerateJWT(creator *models.Creator) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.CreatorJWT.ExpireHours) * time.Hour)

	claims := CreatorJWTClaims{
		CreatorID:    creator.ID,
		Email:        creator.Email,
		TokenVersion: creator.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CreatorJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析创作者 JWT Token
func (s *CreatorAuthService) ParseJWT(tokenString string) (*CreatorJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CreatorJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CreatorJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CreatorJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// ChangePassword 修改创作者密码并让已签发 Token 全量失效
func (s *CreatorAuthService) ChangePassword(creatorID uint, oldPassword, newPassword string) error {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return storageErr(err)
	}
	if creator == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creator.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	creator.PasswordHash = string(hash)
	creator.TokenVersion++
	creator.TokenInvalidBefore = &now
	if err := s.creatorRepo.Update(creator); err != nil {
		return storageErr(err)
	}
	_ = cache.SetCreatorAuthState(context.Background(), cache.BuildCreatorAuthState(creator))
	return nil
}
