package tree

import (
	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// execution is the per-run state threaded through the traversal.
type execution struct {
	rep    report.Reporter
	logger *log.Logger
}

func (x *execution) with(rep report.Reporter) *execution {
	return &execution{rep: rep, logger: x.logger}
}

func (x *execution) debug(msg string, keyvals ...interface{}) {
	if x.logger != nil {
		x.logger.Debug(msg, keyvals...)
	}
}
