package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"digital_diary/config"
	"digital_diary/logger"
	"digital_diary/models"
	"digital_diary/services"
)

// 验证小时和分钟是否有效
func validateHourMinute(cfg *config.Config, hour, minute int) (int, int) {
	defaultHour := cfg.Scheduler.DefaultHour
	defaultMinute := cfg.Scheduler.DefaultMinute

	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour, "default", defaultHour)
		hour = defaultHour
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute, "default", defaultMinute)
		minute = defaultMinute
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskEnrichment TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler 夜间预富化调度器。
// 每天在指定时间点把近期未富化的日记提前算好，
// 白天的聚合请求就能直接命中缓存，避免用户等模型推理。
type Scheduler struct {
	cfg         *config.Config
	entries     services.EntryStore
	enricher    services.Enricher
	concurrency int
	tasks       map[TaskType]*TaskStatus
	mutex       sync.Mutex
}

// 创建新的调度器
func NewScheduler(cfg *config.Config, entries services.EntryStore, enricher services.Enricher) *Scheduler {
	concurrency := cfg.Cron.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Scheduler{
		cfg:         cfg,
		entries:     entries,
		enricher:    enricher,
		concurrency: concurrency,
		tasks:       make(map[TaskType]*TaskStatus),
		mutex:       sync.Mutex{},
	}
}

// 启动调度器
func Start(cfg *config.Config, entries services.EntryStore, enricher services.Enricher) {
	s := NewScheduler(cfg, entries, enricher)
	s.initTasks()
	go s.run()

	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	logger.Info("调度器已启动", "check_interval_sec", checkInterval)
}

// 初始化任务
func (s *Scheduler) initTasks() {
	now := time.Now()
	hour, minute := validateHourMinute(s.cfg, s.cfg.Cron.EnrichHour, s.cfg.Cron.EnrichMin)
	nextRun := getNextTimePoint(now, hour, minute)

	s.tasks[TaskEnrichment] = &TaskStatus{
		LastRun:     nextRun.Add(-24 * time.Hour),
		NextRun:     nextRun,
		IsRunning:   false,
		Description: fmt.Sprintf("日记预富化 (%02d:%02d)", hour, minute),
	}
	logger.Info("定时任务初始化完成", "task_count", len(s.tasks),
		"schedule_time", fmt.Sprintf("%02d:%02d", hour, minute),
		"lookback_days", s.cfg.Cron.LookbackDays)
}

// 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

// 检查任务
func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning {
			continue
		}
		if status.NextRun.IsZero() {
			continue
		}
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		switch taskType {
		case TaskEnrichment:
			hour, minute := validateHourMinute(s.cfg, s.cfg.Cron.EnrichHour, s.cfg.Cron.EnrichMin)
			status.NextRun = getNextTimePoint(now, hour, minute)
		}

		logger.Info("任务执行完成", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskEnrichment:
		s.enrichRecentEntries()
	}
}

// enrichRecentEntries 并发预富化近期缺少分析结果的日记。
// 每个轴的失败单独记日志不中断整批，失败的日记下次任务或用户访问时重试。
func (s *Scheduler) enrichRecentEntries() {
	lookback := s.cfg.Cron.LookbackDays
	if lookback <= 0 {
		lookback = 7
	}

	entries, err := s.entries.ListUnenrichedEntries(lookback)
	if err != nil {
		logger.Error("查询待富化日记失败", "error", err)
		return
	}
	if len(entries) == 0 {
		logger.Info("没有待富化的日记", "lookback_days", lookback)
		return
	}

	logger.Info("开始预富化日记", "count", len(entries), "concurrency", s.concurrency)

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i := range entries {
		entry := entries[i]
		wg.Add(1)
		sem <- struct{}{}
		go func(entry models.Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			s.enrichOne(&entry)
		}(entry)
	}
	wg.Wait()

	logger.Info("日记预富化完成", "count", len(entries))
}

func (s *Scheduler) enrichOne(entry *models.Entry) {
	ctx := context.Background()

	if _, err := s.enricher.GetEmotion(ctx, entry); err != nil {
		logger.Error("预富化情绪失败", "entry_id", entry.ID, "error", err)
	}
	if _, err := s.enricher.GetCharacter(ctx, entry); err != nil {
		logger.Error("预富化性格失败", "entry_id", entry.ID, "error", err)
	}
	if _, err := s.enricher.GetEvents(ctx, entry); err != nil {
		logger.Error("预富化事件失败", "entry_id", entry.ID, "error", err)
	}
}
