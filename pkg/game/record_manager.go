package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MatchRecord 一局结束后的记录
type MatchRecord struct {
	Config     string    `yaml:"config"`
	Seed       int64     `yaml:"seed"`
	Outcome    string    `yaml:"outcome"`
	Stage      int       `yaml:"stage"`
	Duration   float64   `yaml:"duration"` // 模拟时间（秒）
	Players    int       `yaml:"players"`
	FinishedAt time.Time `yaml:"finishedAt"`
}

// recordHistory 持久化格式
type recordHistory struct {
	Records []MatchRecord `yaml:"records"`
}

// 存储路径常量
const (
	recordsObject   = "records"
	recordsProperty = "history"
)

// DefaultHistoryLimit 默认保留的记录条数
const DefaultHistoryLimit = 50

// RecordManager 对局记录管理器
// 负责记录的加载、追加和保存；gdata 管理器为 nil 时只在内存中保存
type RecordManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	records      []MatchRecord
	limit        int
}

// NewRecordManager 创建记录管理器并加载已有记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//   - limit: 最多保留的记录数，<= 0 时使用 DefaultHistoryLimit
func NewRecordManager(gdataManager *gdata.Manager, limit int) *RecordManager {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rm := &RecordManager{
		gdataManager: gdataManager,
		limit:        limit,
	}

	if err := rm.Load(); err != nil {
		// 记录损坏不影响游戏，从空记录开始
		log.Printf("[RecordManager] Warning: Failed to load records: %v (starting empty)", err)
	}
	return rm
}

// Load 从 gdata 加载记录
func (rm *RecordManager) Load() error {
	rm.records = nil
	if rm.gdataManager == nil {
		return nil
	}
	if !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var history recordHistory
	if err := yaml.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}

	rm.records = history.Records
	log.Printf("[RecordManager] Loaded %d records", len(rm.records))
	return nil
}

// Save 保存记录到 gdata；降级模式下直接返回 nil
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(recordHistory{Records: rm.records})
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Append 追加一条记录并保存，超出上限时丢弃最旧的记录
func (rm *RecordManager) Append(record MatchRecord) error {
	rm.records = append(rm.records, record)
	if over := len(rm.records) - rm.limit; over > 0 {
		rm.records = append(rm.records[:0], rm.records[over:]...)
	}
	return rm.Save()
}

// History 返回全部记录（旧 → 新）
func (rm *RecordManager) History() []MatchRecord {
	return rm.records
}

// BestStage 历史最高成长阶段；无记录时返回 0
func (rm *RecordManager) BestStage() int {
	best := 0
	for _, r := range rm.records {
		best = max(best, r.Stage)
	}
	return best
}

// RecordFor 根据结束的对局生成记录
func RecordFor(m *Match, finishedAt time.Time) MatchRecord {
	return MatchRecord{
		Config:     m.cfg.Name,
		Seed:       m.seed,
		Outcome:    m.outcome.String(),
		Stage:      m.treeSystem.GrowingStage(),
		Duration:   m.elapsed,
		Players:    m.PlayerCount(),
		FinishedAt: finishedAt,
	}
}
