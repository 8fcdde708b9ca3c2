package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	leaveSummaryKeyPrefix = "analytics:leave-summary:"
	headcountKey          = "analytics:headcount"

	// Aggregates lag the source tables by at most this TTL.
	cacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	LeaveSummary(ctx context.Context, year int) (LeaveSummaryResponse, error)
	Headcount(ctx context.Context) (HeadcountResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) LeaveSummary(ctx context.Context, year int) (LeaveSummaryResponse, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}
	cacheKey := fmt.Sprintf("%s%d", leaveSummaryKeyPrefix, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp LeaveSummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.LeaveSummary(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := LeaveSummaryResponse{Year: year, Rows: rows}
		for _, row := range rows {
			resp.Total += row.Requests
		}

		s.cache(ctx, cacheKey, resp)
		return resp, nil
	})
	if err != nil {
		s.logger.Error("leave summary query failed", zap.Int("year", year), zap.Error(err))
		return LeaveSummaryResponse{}, err
	}

	return v.(LeaveSummaryResponse), nil
}

func (s *service) Headcount(ctx context.Context) (HeadcountResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, headcountKey).Result(); err == nil {
			var resp HeadcountResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(headcountKey, func() (interface{}, error) {
		rows, err := s.repo.Headcount(ctx)
		if err != nil {
			return nil, err
		}

		resp := HeadcountResponse{Rows: rows}
		for _, row := range rows {
			resp.Total += row.Employees
		}

		s.cache(ctx, headcountKey, resp)
		return resp, nil
	})
	if err != nil {
		s.logger.Error("headcount query failed", zap.Error(err))
		return HeadcountResponse{}, err
	}

	return v.(HeadcountResponse), nil
}

func (s *service) cache(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	if jsonData, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, jsonData, cacheTTL)
	}
}
