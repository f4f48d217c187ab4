package systems

import (
	"log"

	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// Spawner 创建波次实体
//
// tier 为该波次类型已消耗的层级数，用于查询属性表。
// 创建失败时返回 ecs.InvalidEntity，调度器会跳过该实体。
type Spawner interface {
	Spawn(wave types.WaveType, tier int) ecs.EntityID
}

// WaveController 树状态机驱动波次所需的接口
type WaveController interface {
	StartWave(wave types.WaveType)
	EndWave()
	ActiveWave() types.WaveType
}

// Burst 最近一次随机爆发的抽取结果
type Burst struct {
	Count     int
	Frequency float64
}

// WaveScheduler 波次调度器
//
// 职责：
//   - 按层级配置定时批量生成敌人或投射物（确定性批次 / 随机爆发两种模式）
//   - 独占持有已生成实体的集合，负责它们的销毁
//   - 波次结束时清理全部实体并消耗一个层级
//
// 行为实体只能通过 RequestDestroy 请求销毁，请求在 FlushDestroyRequests 时统一生效，
// 因此遍历实体期间集合不会被修改。
type WaveScheduler struct {
	entityManager *ecs.EntityManager
	spawner       Spawner
	rng           utils.RandomSource

	enemyWaves      config.WaveSchedule
	projectileWaves config.WaveSchedule

	// 每种波次类型已消耗的层级数
	consumed map[types.WaveType]int

	active    types.WaveType
	tier      config.WaveTier
	hasTier   bool
	waveIdx   int
	batchIdx  int
	waveTimer float64
	lastBurst Burst

	// 已生成实体集合：切片保持确定的遍历顺序，索引表用于 O(1) 删除
	population []ecs.EntityID
	popIndex   map[ecs.EntityID]int

	destroyRequests []ecs.EntityID

	// Verbose 打印每批生成日志
	Verbose bool
}

// NewWaveScheduler 创建波次调度器
//
// 参数：
//   - em: 实体管理器（销毁实体用）
//   - spawner: 实体生成器
//   - rng: 随机爆发模式使用的随机数源
//   - waves: 敌人与投射物的层级配置
func NewWaveScheduler(em *ecs.EntityManager, spawner Spawner, rng utils.RandomSource, waves config.WavesConfig) *WaveScheduler {
	return &WaveScheduler{
		entityManager:   em,
		spawner:         spawner,
		rng:             rng,
		enemyWaves:      waves.Enemies,
		projectileWaves: waves.Projectiles,
		consumed:        make(map[types.WaveType]int),
		active:          types.WaveNone,
		popIndex:        make(map[ecs.EntityID]int),
	}
}

func (s *WaveScheduler) schedule(wave types.WaveType) config.WaveSchedule {
	if wave == types.WaveEnemies {
		return s.enemyWaves
	}
	return s.projectileWaves
}

// ActiveWave 当前活动的波次类型
func (s *WaveScheduler) ActiveWave() types.WaveType {
	return s.active
}

// ConsumedTiers 返回指定波次类型已消耗的层级数
func (s *WaveScheduler) ConsumedTiers(wave types.WaveType) int {
	return s.consumed[wave]
}

// WaveIndex 当前层级内的波次序号
func (s *WaveScheduler) WaveIndex() int {
	return s.waveIdx
}

// BatchIndex 当前波次已生成的批次数
func (s *WaveScheduler) BatchIndex() int {
	return s.batchIdx
}

// WaveTimer 当前波次计时器
// 批次模式下为累积时间，随机爆发模式下为距下一次爆发的剩余时间
func (s *WaveScheduler) WaveTimer() float64 {
	return s.waveTimer
}

// LastBurst 最近一次随机爆发的抽取结果
func (s *WaveScheduler) LastBurst() Burst {
	return s.lastBurst
}

// Population 返回已生成实体的拷贝
func (s *WaveScheduler) Population() []ecs.EntityID {
	out := make([]ecs.EntityID, len(s.population))
	copy(out, s.population)
	return out
}

// PopulationCount 已生成且未销毁的实体数量
func (s *WaveScheduler) PopulationCount() int {
	return len(s.population)
}

// Owns 实体是否属于调度器的集合
func (s *WaveScheduler) Owns(id ecs.EntityID) bool {
	_, ok := s.popIndex[id]
	return ok
}

// StartWave 开始指定类型的波次
//
// 同类型波次已在运行时为空操作。切换类型前调用方必须先调用 EndWave，
// 调度器不做仲裁。开始时层级内波次序号、批次序号和计时器归零。
func (s *WaveScheduler) StartWave(wave types.WaveType) {
	if wave == types.WaveNone || wave == s.active {
		return
	}
	if s.active != types.WaveNone {
		log.Printf("[WaveScheduler] Warning: starting %s while %s is active (EndWave not called)", wave, s.active)
	}

	s.active = wave
	s.waveIdx = 0
	s.batchIdx = 0
	s.waveTimer = 0
	s.lastBurst = Burst{}

	consumed := s.consumed[wave]
	s.tier, s.hasTier = s.schedule(wave).TierAt(consumed)
	if s.hasTier && !s.tier.IsRandom() && len(s.tier.Waves) == 0 {
		s.hasTier = false
	}

	if !s.hasTier {
		log.Printf("[WaveScheduler] No %s tier available (consumed=%d), wave is idle", wave, consumed)
		return
	}
	if s.tier.IsRandom() {
		log.Printf("[WaveScheduler] Started %s wave: tier %d (random bursts)", wave, consumed)
	} else {
		log.Printf("[WaveScheduler] Started %s wave: tier %d (%d waves)", wave, consumed, len(s.tier.Waves))
	}
}

// Update 推进当前波次的计时
func (s *WaveScheduler) Update(dt float64) {
	if s.active == types.WaveNone || !s.hasTier {
		return
	}

	if s.tier.IsRandom() {
		s.updateBursts(dt)
		return
	}
	s.updateBatches(dt)
}

// timerEpsilon 计时比较容差，吸收 dt 累加的浮点误差（如 60×(1/60) < 1）
const timerEpsilon = 1e-9

// updateBatches 确定性批次模式
// 生成批次与冷却累积互斥：同一个 tick 不会既生成又推进冷却。
// 到点后扣除而不是清零计时器，超出部分计入下一段。
func (s *WaveScheduler) updateBatches(dt float64) {
	waves := s.tier.Waves
	loop := s.schedule(s.active).ShouldLoopWaves()
	if s.waveIdx >= len(waves) {
		if !loop {
			return
		}
		s.waveIdx %= len(waves)
	}
	wave := waves[s.waveIdx]

	if s.batchIdx < wave.TotalSpawnBatchCount {
		s.waveTimer += dt
		if s.waveTimer+timerEpsilon >= wave.SpawningFrequency {
			s.spawn(wave.SpawnBatchSize)
			s.batchIdx++
			s.waveTimer -= wave.SpawningFrequency
			if s.Verbose {
				log.Printf("[WaveScheduler] Spawned %d %s (wave %d, batch %d/%d)",
					wave.SpawnBatchSize, s.active, s.waveIdx, s.batchIdx, wave.TotalSpawnBatchCount)
			}
		}
		return
	}

	s.waveTimer += dt
	if s.waveTimer+timerEpsilon >= wave.NextWaveCooldown {
		s.waveIdx++
		if loop {
			s.waveIdx %= len(waves)
		}
		s.batchIdx = 0
		s.waveTimer -= wave.NextWaveCooldown
		if s.Verbose {
			log.Printf("[WaveScheduler] Next %s wave: %d", s.active, s.waveIdx)
		}
	}
}

// updateBursts 随机爆发模式
// 计时器归零时抽取间隔和数量（闭区间），立即生成
func (s *WaveScheduler) updateBursts(dt float64) {
	r := s.tier.Random
	if s.waveTimer > 0 {
		s.waveTimer -= dt
		return
	}

	frequency := utils.RandFloatInclusive(s.rng, r.SpawnFrequencyMin, r.SpawnFrequencyMax)
	count := utils.RandIntInclusive(s.rng, r.SpawnCountMin, r.SpawnCountMax)
	s.spawn(count)
	s.waveTimer = frequency
	s.lastBurst = Burst{Count: count, Frequency: frequency}

	if s.Verbose {
		log.Printf("[WaveScheduler] Burst of %d %s, next in %.2fs", count, s.active, frequency)
	}
}

func (s *WaveScheduler) spawn(count int) {
	tier := s.consumed[s.active]
	for i := 0; i < count; i++ {
		id := s.spawner.Spawn(s.active, tier)
		if id == ecs.InvalidEntity {
			continue
		}
		s.popIndex[id] = len(s.population)
		s.population = append(s.population, id)
	}
}

// DestroyEntity 按句柄销毁一个已生成实体
// 实体不在集合中（已销毁或句柄过期）时为空操作
func (s *WaveScheduler) DestroyEntity(id ecs.EntityID) {
	idx, ok := s.popIndex[id]
	if !ok {
		return
	}

	last := len(s.population) - 1
	if idx != last {
		moved := s.population[last]
		s.population[idx] = moved
		s.popIndex[moved] = idx
	}
	s.population = s.population[:last]
	delete(s.popIndex, id)

	s.entityManager.DestroyEntity(id)
}

// RequestDestroy 由行为系统调用，登记销毁请求
func (s *WaveScheduler) RequestDestroy(id ecs.EntityID) {
	s.destroyRequests = append(s.destroyRequests, id)
}

// FlushDestroyRequests 执行本 tick 登记的所有销毁请求
// 同一实体被多次请求时只销毁一次
func (s *WaveScheduler) FlushDestroyRequests() {
	for _, id := range s.destroyRequests {
		s.DestroyEntity(id)
	}
	s.destroyRequests = s.destroyRequests[:0]
}

// EndWave 结束当前波次
// 销毁全部已生成实体，消耗当前类型的一个层级，活动类型置为 None。
// 没有活动波次时为空操作。
func (s *WaveScheduler) EndWave() {
	if s.active == types.WaveNone {
		return
	}

	destroyed := len(s.population)
	for _, id := range s.population {
		s.entityManager.DestroyEntity(id)
	}
	s.population = s.population[:0]
	clear(s.popIndex)
	s.destroyRequests = s.destroyRequests[:0]

	s.consumed[s.active]++
	log.Printf("[WaveScheduler] Ended %s wave: destroyed %d, tiers consumed %d", s.active, destroyed, s.consumed[s.active])

	s.active = types.WaveNone
	s.hasTier = false
	s.tier = config.WaveTier{}
}
