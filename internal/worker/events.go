package worker

// GenerateTaskPayload is the generate.task message body.
type GenerateTaskPayload struct {
	InterviewID string   `json:"interview_id"`
	Topic       string   `json:"topic"`
	Count       int      `json:"count"`
	SeedURLs    []string `json:"seed_urls,omitempty"`

	CorrelationID string `json:"correlation_id,omitempty"`
}
