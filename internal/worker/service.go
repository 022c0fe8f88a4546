package worker

import (
	"context"
	"errors"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/queue"

	"github.com/hibiken/asynq"
)

const staleCartBatchSize = 200

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CartRepo != nil {
		go s.runStaleCartSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runStaleCartSweepLoop 定期把长时间未更新的活跃购物车标记为 abandoned。
// 只改状态不删数据，用户回来继续加购时会重新激活。
func (s *Service) runStaleCartSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.CartRepo == nil || s.consumer.Config == nil {
		return
	}
	cartCfg := s.consumer.Config.Cart
	if cartCfg.AbandonedAfterHours <= 0 {
		return
	}
	interval := time.Duration(cartCfg.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	runOnce := func() {
		before := time.Now().Add(-time.Duration(cartCfg.AbandonedAfterHours) * time.Hour)
		carts, err := s.consumer.CartRepo.ListStale(before, staleCartBatchSize)
		if err != nil {
			logger.Warnw("worker_stale_cart_list_failed", "error", err)
			return
		}
		for i := range carts {
			cart := carts[i]
			cart.Status = constants.CartStatusAbandoned
			cart.UpdatedAt = time.Now()
			if err := s.consumer.CartRepo.Update(&cart); err != nil {
				logger.Warnw("worker_stale_cart_mark_failed", "cart_id", cart.ID, "error", err)
				continue
			}
			logger.Infow("worker_stale_cart_marked", "cart_id", cart.ID, "user_id", cart.UserID, "cart_type", cart.Type)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
