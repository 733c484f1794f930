// Package scheduler 在 gocron/v2 之上按名称管理定时任务，并记录每个任务的运行状态.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/folio/pkg/log"
)

// ErrJobNotFound 任务不存在.
var ErrJobNotFound = errors.New("job not found")

// JobStatus 任务状态.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled"
	StatusRunning   JobStatus = "running"
	StatusError     JobStatus = "error"
)

// JobInfo 管理接口展示的任务快照.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CronExpr    string    `json:"cron_expr"`
	NextRun     time.Time `json:"next_run"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Runs        int       `json:"runs"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type entry struct {
	job  gocron.Job
	info JobInfo
}

// Scheduler 状态由 gocron 事件监听器维护.
type Scheduler struct {
	cron    gocron.Scheduler
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *zerolog.Logger
}

func NewScheduler() (*Scheduler, error) {
	logger := log.With("scheduler")

	cron, err := gocron.NewScheduler(gocron.WithLogger(cronLogger{logger}))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{cron: cron, entries: make(map[string]*entry), logger: logger}, nil
}

// AddCron 注册 cron 任务. 同名任务已存在时报错，上一次未结束时本次顺延.
func (s *Scheduler) AddCron(ctx context.Context, name, cronExpr string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("job %s already exists", name)
	}

	j, err := s.cron.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(recovered(job), ctx),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(
			gocron.BeforeJobRuns(s.started),
			gocron.AfterJobRuns(func(_ uuid.UUID, name string) { s.finished(name, nil) }),
			gocron.AfterJobRunsWithError(func(_ uuid.UUID, name string, err error) { s.finished(name, err) }),
		),
	)
	if err != nil {
		return fmt.Errorf("add job %s: %w", name, err)
	}

	s.entries[name] = &entry{job: j, info: JobInfo{
		ID:        j.ID().String(),
		Name:      name,
		CronExpr:  cronExpr,
		Status:    StatusScheduled,
		CreatedAt: time.Now(),
	}}

	s.logger.Info().Str("job", name).Str("cron", cronExpr).Msg("Added cron job")

	return nil
}

// recovered 把 panic 变成普通错误.
func recovered(job func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in job: %v", r)
			}
		}()

		return job(ctx)
	}
}

func (s *Scheduler) started(_ uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[name]; ok {
		e.info.Status = StatusRunning
	}
}

func (s *Scheduler) finished(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return
	}

	now := time.Now()
	e.info.LastRun = now
	e.info.Runs++

	if err != nil {
		e.info.Status = StatusError
		e.info.Error = err.Error()

		s.logger.Warn().Err(err).Str("job", name).Msg("Job failed")

		return
	}

	e.info.Status = StatusScheduled
	e.info.Error = ""
	e.info.LastSuccess = now
}

func (s *Scheduler) lookup(name string) (*entry, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	return e, nil
}

// RunNow 立即触发一次，不影响原有计划.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	e, err := s.lookup(name)
	s.mu.RUnlock()

	if err != nil {
		return err
	}

	return e.job.RunNow()
}

func (s *Scheduler) RemoveJobByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(name)
	if err != nil {
		return err
	}

	if err := s.cron.RemoveJob(e.job.ID()); err != nil {
		return fmt.Errorf("remove job %s: %w", name, err)
	}

	delete(s.entries, name)

	s.logger.Info().Str("job", name).Msg("Removed job")

	return nil
}

func (s *Scheduler) GetJobInfoByName(name string) (JobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(name)
	if err != nil {
		return JobInfo{}, err
	}

	return e.snapshot(), nil
}

// GetJobInfos 按名称排序.
func (s *Scheduler) GetJobInfos() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.snapshot())
	}

	slices.SortFunc(out, func(a, b JobInfo) int { return strings.Compare(a.Name, b.Name) })

	return out
}

// snapshot 复制状态并读取 gocron 的下次运行时间.
func (e *entry) snapshot() JobInfo {
	info := e.info
	if next, err := e.job.NextRun(); err == nil {
		info.NextRun = next
	}

	return info
}

func (s *Scheduler) Start() {
	s.logger.Info().Msg("Starting scheduler")
	s.cron.Start()
}

// Stop 等待运行中的任务结束.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("Stopping scheduler")

	return s.cron.Shutdown()
}

// cronLogger 把 gocron 内部日志转到 zerolog，键值对参数原样作为字段.
type cronLogger struct{ l *zerolog.Logger }

func (c cronLogger) Debug(msg string, args ...any) { c.l.Debug().Fields(args).Msg(msg) }
func (c cronLogger) Info(msg string, args ...any)  { c.l.Debug().Fields(args).Msg(msg) }
func (c cronLogger) Warn(msg string, args ...any)  { c.l.Warn().Fields(args).Msg(msg) }
func (c cronLogger) Error(msg string, args ...any) { c.l.Error().Fields(args).Msg(msg) }
