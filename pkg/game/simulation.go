package game

import (
	"context"
	"fmt"
	"log"

	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/types"
	"golang.org/x/sync/errgroup"
)

// SimulationOptions 无界面模拟参数
type SimulationOptions struct {
	Matches  int     // 对局数
	Players  int     // 每局机器人数
	Seed     int64   // 第 i 局使用 Seed+i
	Dt       float64 // tick 时长（秒）
	MaxTime  float64 // 单局模拟时间上限（秒），超出记为未结束
	Parallel int     // 同时运行的对局数，<= 0 表示不限制
}

// SimulationResult 一局模拟的结果
type SimulationResult struct {
	Seed      int64
	Outcome   types.MatchOutcome
	Stage     int
	Elapsed   float64
	TreeHP    float64
	TimedOut  bool
	Cancelled bool
}

// RunSimulation 使用机器人并发运行多局对局
//
// 每局在独立的 goroutine 中推进，彼此不共享状态。ctx 取消时未结束的对局
// 标记为 Cancelled 并返回 ctx 的错误。
func RunSimulation(ctx context.Context, cfg *config.MatchConfig, opts SimulationOptions) ([]SimulationResult, error) {
	if opts.Matches <= 0 {
		return nil, fmt.Errorf("matches must be positive, got %d", opts.Matches)
	}
	if opts.Players <= 0 || opts.Players > cfg.Players.MaxPlayers {
		return nil, fmt.Errorf("players must be in [1, %d], got %d", cfg.Players.MaxPlayers, opts.Players)
	}
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 60
	}
	if opts.MaxTime <= 0 {
		opts.MaxTime = 600
	}

	results := make([]SimulationResult, opts.Matches)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}

	for i := range results {
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			res, err := simulateMatch(gctx, cfg, seed, opts)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func simulateMatch(ctx context.Context, cfg *config.MatchConfig, seed int64, opts SimulationOptions) (SimulationResult, error) {
	m, err := NewMatch(cfg, seed)
	if err != nil {
		return SimulationResult{}, err
	}

	bots := make([]*Bot, 0, opts.Players)
	for i := 0; i < opts.Players; i++ {
		index, err := m.PlayerJoined()
		if err != nil {
			return SimulationResult{}, err
		}
		bots = append(bots, NewBot(index))
	}

	res := SimulationResult{Seed: m.Seed()}
	// 每模拟一秒检查一次取消
	checkEvery := max(1, int(1/opts.Dt+0.5))
	for m.Outcome() == types.OutcomeRunning {
		if m.Elapsed() >= opts.MaxTime {
			res.TimedOut = true
			break
		}
		if m.Ticks()%checkEvery == 0 && ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		snap := m.Snapshot()
		for _, b := range bots {
			if err := m.SetPlayerInput(b.Index, b.Input(&snap)); err != nil {
				return res, err
			}
		}
		m.Update(opts.Dt)
	}

	res.Outcome = m.Outcome()
	res.Stage = m.Tree().GrowingStage()
	res.Elapsed = m.Elapsed()
	res.TreeHP = m.Tree().Health()
	log.Printf("[Simulation] seed=%d outcome=%s stage=%d elapsed=%.1fs", res.Seed, res.Outcome, res.Stage, res.Elapsed)
	return res, nil
}
