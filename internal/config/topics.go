package config

const (
	// TopicGenerateTask is the NSQ topic for interview question generation tasks.
	TopicGenerateTask = "generate.task"
)
