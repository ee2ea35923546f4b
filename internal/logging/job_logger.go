package logging

import (
	"go.uber.org/zap"
)

// JobLogger scopes a base logger to a single interpreter job and exposes one
// call shape per error kind the interpreter can hit.
type JobLogger struct {
	*zap.Logger
	jobID string
}

// NewJobLogger scopes base to a job id.
func NewJobLogger(base *zap.Logger, jobID string) *JobLogger {
	return &JobLogger{
		Logger: base.With(zap.String("job_id", jobID), zap.String("component", "interpreter")),
		jobID:  jobID,
	}
}

// LogTokenizeError logs a fatal tokenization error. The caller
// aborts the job after this call.
func (l *JobLogger) LogTokenizeError(offset int, err error) {
	l.Error("tokenization error",
		zap.Int("byte_offset", offset),
		zap.Error(err),
	)
}

// LogParamOutOfRange logs a clamped or ignored out-of-range parameter.
// Recovery already happened by the time this is called.
func (l *JobLogger) LogParamOutOfRange(command, detail string) {
	l.Warn("parameter out of range",
		zap.String("command", command),
		zap.String("detail", detail),
	)
}

// LogUnsupportedCodepage logs the once-per-job-per-slot PC437 fallback.
func (l *JobLogger) LogUnsupportedCodepage(slot int, requested string) {
	l.Warn("unsupported codepage, falling back to PC437",
		zap.Int("slot", slot),
		zap.String("requested", requested),
	)
}

// LogUnsupportedCommand logs an unimplemented command. Callers must only
// call this once per distinct command kind per job; dedup is the caller's
// responsibility.
func (l *JobLogger) LogUnsupportedCommand(command string) {
	l.Error("unsupported command, ignored", zap.String("command", command))
}

// LogBackendError logs a fatal backend I/O error. The caller
// ends the job after this call; no partial finalize is attempted.
func (l *JobLogger) LogBackendError(call string, err error) {
	l.Error("backend error", zap.String("call", call), zap.Error(err))
}
