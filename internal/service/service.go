package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/hws4444-design/mathclinic-crm/config"
	"github.com/hws4444-design/mathclinic-crm/internal/analytics"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
	"github.com/hws4444-design/mathclinic-crm/pkg/jwt"
	"github.com/hws4444-design/mathclinic-crm/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Student   StudentService
	Log       LogService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	table := keywordTableFromConfig(cfg.Analytics.Keywords)
	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		// config.Validate 已校验过时区；这里兜底为 UTC
		loc = time.UTC
	}

	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:   NewStudentService(repo, table, logger),
		Log:       NewLogService(repo, table, logger),
		Dashboard: NewDashboardService(repo, loc, logger),
		Export:    NewExportService(repo, loc, logger),
	}
}

// keywordTableFromConfig 将配置的关键词表转为引擎表示；未配置时用内置默认表
func keywordTableFromConfig(items []config.KeywordConfig) analytics.KeywordTable {
	if len(items) == 0 {
		return analytics.DefaultKeywordTable()
	}
	table := make(analytics.KeywordTable, 0, len(items))
	for _, it := range items {
		table = append(table, analytics.KeywordRule{Keyword: it.Key, Label: it.Label})
	}
	return table
}
