package document

import (
	"encoding/json"
	"time"

	"tidymove/models"

	"github.com/hibiken/asynq"
)

const TypeDocumentRetry = "document:retry"

// NewRetryTask packages a failed document run for out-of-band retry.
func NewRetryTask(req models.DocumentRunRequest, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDocumentRetry, b)
	opts := []asynq.Option{asynq.ProcessIn(delay)}

	return task, opts, nil
}
