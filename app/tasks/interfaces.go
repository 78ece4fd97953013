package tasks

// TaskSchedulerInterface defines the interface for task scheduling
// operations. Used by the main application and the API layer to manage
// background task processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
