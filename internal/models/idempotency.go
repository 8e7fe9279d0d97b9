package models

import "time"

// IdempotencyKey tracks processed requests so retries replay the first response
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Key            string    `db:"key" json:"key"`
	RequestPath    string    `db:"request_path" json:"request_path"`
	ResponseBody   string    `db:"response_body" json:"response_body"`
	ResponseStatus int       `db:"response_status" json:"response_status"`
}
