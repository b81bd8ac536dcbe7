package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/rental"
	"voyago/services/tasks"
	"voyago/utils"
)

// InitPricingWorker runs the async pricing worker in background.
func InitPricingWorker(svc rental.SessionService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePricingRecalculate, handlePricingTask(svc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting pricing task worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("pricing task worker failed", zap.Error(err))
		}
	}()
}

func handlePricingTask(svc rental.SessionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PricingTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		err := svc.RecalculatePricing(ctx, p.SessionID)
		if err == nil {
			return nil
		}
		// Recoverable pricing failures are recorded on the session itself;
		// retrying them through the queue would only repeat the same answer.
		if rental.ErrorCode(err) != "" {
			utils.GetLogger().Warn("pricing recalculation failed",
				zap.String("sessionID", p.SessionID), zap.Error(err))
			return nil
		}
		return err
	}
}
