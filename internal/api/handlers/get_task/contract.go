package get_task

import "github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"

type TaskReader interface {
	Get(id string) (taskrunner.Task, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
