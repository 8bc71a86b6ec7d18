package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tidymove/config"
	"tidymove/models"
	"tidymove/services/document"
	"tidymove/utils"

	"github.com/hibiken/asynq"
)

// InitDocumentRetryWorker runs the async worker in background. It consumes
// the document-retry queue fed by the document orchestrator.
func InitDocumentRetryWorker(docSvc document.Orchestrator) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDocQueueDB,
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
	mux.HandleFunc(document.TypeDocumentRetry, handleDocumentRetry(docSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[DocumentWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DocumentWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DocumentWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleDocumentRetry(docSvc document.Orchestrator) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var req models.DocumentRunRequest
		if err := json.Unmarshal(task.Payload(), &req); err != nil {
			log.Printf("[DocumentRetryHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[DocumentRetryHandler] Retrying document run for booking %s (attempt %d)", req.BookingID, req.Attempt)

		result, err := docSvc.Run(ctx, req)
		if err != nil {
			log.Printf("[DocumentRetryHandler] Document run failed: %v", err)
			return err
		}
		if !result.Success {
			// The orchestrator re-enqueues with the next attempt count;
			// nothing more to do here.
			log.Printf("[DocumentRetryHandler] Document run for booking %s still incomplete", req.BookingID)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := utils.GetDocQueueClient()
	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DocumentWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
