package service

import (
	"context"
	"encoding/json"
	"fmt"

	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
	"playex_v2/internal/platform/config"
	"playex_v2/internal/platform/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const leaderboardCacheKey = "leaderboard:top"

type UserService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
}

func NewUserService(userRepo repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{userRepo: userRepo, rdb: rdb}
}

type ProfileResponse struct {
	User  *model.User      `json:"user"`
	Stats *model.UserStats `json:"stats"`
}

func (s *UserService) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	user.HashedPassword = nil

	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &ProfileResponse{User: user, Stats: stats}, nil
}

func (s *UserService) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, tgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	user.HashedPassword = nil
	return user, nil
}

func (s *UserService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

func (s *UserService) WeeklyStats(ctx context.Context, userID string) (*model.WeeklyStats, error) {
	stats, err := s.userRepo.WeeklyStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}
	return stats, nil
}

// Leaderboard serves the top users by score, cached in Redis for a short
// TTL. A cache failure degrades to a direct database read.
func (s *UserService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []model.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	entries, err := s.userRepo.TopByScore(ctx, config.AppConfig.LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardCacheKey, payload, config.AppConfig.LeaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}
