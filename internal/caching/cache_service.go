package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Employee caching
	GetEmployee(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error)
	SetEmployee(ctx context.Context, employee *models.Employee, ttl time.Duration) error
	DeleteEmployee(ctx context.Context, employeeID uuid.UUID) error

	// Dashboard metrics caching
	GetDashboard(ctx context.Context) (*models.DashboardMetrics, error)
	SetDashboard(ctx context.Context, metrics *models.DashboardMetrics, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as plain host:port.
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "rediss://"), "redis://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func employeeKey(employeeID uuid.UUID) string {
	return fmt.Sprintf("employee:%s", employeeID)
}

const dashboardKey = "dashboard:metrics"

func (s *redisCacheService) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error) {
	data, err := s.client.Get(ctx, employeeKey(employeeID)).Bytes()
	if err != nil {
		return nil, err
	}
	employee := &models.Employee{}
	if err := json.Unmarshal(data, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *redisCacheService) SetEmployee(ctx context.Context, employee *models.Employee, ttl time.Duration) error {
	data, err := json.Marshal(employee)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, employeeKey(employee.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteEmployee(ctx context.Context, employeeID uuid.UUID) error {
	return s.client.Del(ctx, employeeKey(employeeID)).Err()
}

func (s *redisCacheService) GetDashboard(ctx context.Context) (*models.DashboardMetrics, error) {
	data, err := s.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return nil, err
	}
	metrics := &models.DashboardMetrics{}
	if err := json.Unmarshal(data, metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *redisCacheService) SetDashboard(ctx context.Context, metrics *models.DashboardMetrics, ttl time.Duration) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dashboardKey, data, ttl).Err()
}

func (s *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	return s.client.Del(ctx, dashboardKey).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
