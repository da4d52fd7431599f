package jobs

import (
	"context"
	"fmt"
	"time"

	"ecofleet/internal/core/application/outbox"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPollInterval is how often the outbox is polled when no interval is
// configured.
const DefaultPollInterval = 60 * time.Second

// PassRunner runs one outbox pass. *outbox.Dispatcher implements it.
type PassRunner interface {
	ProcessPass(ctx context.Context) (outbox.PassResult, error)
}

// OutboxDispatcherJob runs an outbox pass every poll interval. A tick that
// fires while the previous pass is still running is skipped.
type OutboxDispatcherJob struct {
	runner   PassRunner
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger

	// passCtx is handed to every pass and cancelled by Stop.
	passCtx    context.Context
	cancelPass context.CancelFunc
}

// NewOutboxDispatcherJob creates the job. Intervals below one second are
// raised to one second by the scheduler.
func NewOutboxDispatcherJob(runner PassRunner, interval time.Duration, logger *zap.Logger) *OutboxDispatcherJob {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger = logger.With(zap.String("component", "outbox_dispatcher_job"))
	passCtx, cancelPass := context.WithCancel(context.Background())

	return &OutboxDispatcherJob{
		runner:     runner,
		interval:   interval,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()}))),
		logger:     logger,
		passCtx:    passCtx,
		cancelPass: cancelPass,
	}
}

func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox dispatcher job started", zap.Duration("interval", j.interval))
	return nil
}

// Stop prevents further ticks and waits for a running pass to finish. When
// ctx ends first the pass is cancelled, which rolls its batch back, and Stop
// still waits for it to return.
func (j *OutboxDispatcherJob) Stop(ctx context.Context) {
	done := j.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		j.logger.Warn("Cancelling running outbox pass", zap.Error(ctx.Err()))
		j.cancelPass()
		<-done
	}
	j.cancelPass()
	j.logger.Info("Outbox dispatcher job stopped")
}

func (j *OutboxDispatcherJob) run() {
	result, err := j.runner.ProcessPass(j.passCtx)
	if err != nil {
		j.logger.Error("Outbox dispatcher pass failed", zap.Error(err))
		return
	}
	if result.Failed > 0 {
		j.logger.Warn("Outbox messages dead-lettered", zap.Int("failed", result.Failed))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
