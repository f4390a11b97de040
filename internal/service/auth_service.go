package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/config"
	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/model"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
	"github.com/hws4444-design/mathclinic-crm/pkg/jwt"
	"github.com/hws4444-design/mathclinic-crm/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrRegistrationClosed = errors.New("已关闭开放注册")
	ErrTutorNotFound      = errors.New("讲师账号不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TutorResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Access Token 的 JTI 加入黑名单（Redis 不可用时降级为 no-op）
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, tutorID string) (*dto.TutorResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TutorResponse, error) {
	// 单讲师场景：创建首个账号后可通过配置关闭开放注册
	if !s.cfg.Auth.AllowOpenRegistration {
		total, err := s.repo.Tutor.Count(ctx)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			return nil, ErrRegistrationClosed
		}
	}

	// 检查邮箱唯一性
	if _, err := s.repo.Tutor.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	tutor := &model.Tutor{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Tutor.Create(ctx, tutor); err != nil {
		s.logger.Error("创建讲师账号失败", zap.Error(err))
		return nil, err
	}

	return &dto.TutorResponse{ID: tutor.TutorID, Name: tutor.Name, Email: tutor.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询账号
	tutor, err := s.repo.Tutor.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询讲师账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(tutor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(tutor.TutorID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(tutor.TutorID)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Tutor:        dto.TutorResponse{ID: tutor.TutorID, Name: tutor.Name, Email: tutor.Email},
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, tutorID string) (*dto.TutorResponse, error) {
	tutor, err := s.repo.Tutor.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	return &dto.TutorResponse{ID: tutor.TutorID, Name: tutor.Name, Email: tutor.Email}, nil
}
