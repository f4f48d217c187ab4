// simulate 使用机器人在无界面模式下批量运行对局，用于检查对局配置的平衡性
//
// 用法：
//
//	go run ./cmd/simulate -config data/match.yaml -matches 20 -players 2
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/game"
	"github.com/gonewx/heartband/pkg/types"
)

var (
	configPath = flag.String("config", config.DefaultMatchConfigPath, "对局配置文件")
	matches    = flag.Int("matches", 10, "对局数")
	players    = flag.Int("players", 2, "每局机器人数")
	seed       = flag.Int64("seed", 1, "第一局的随机种子，第 i 局使用 seed+i")
	maxTime    = flag.Float64("max-time", 900, "单局模拟时间上限（秒）")
	parallel   = flag.Int("parallel", 0, "同时运行的对局数，0 表示不限制")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadMatchConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	results, err := game.RunSimulation(ctx, cfg, game.SimulationOptions{
		Matches:  *matches,
		Players:  *players,
		Seed:     *seed,
		Dt:       1.0 / 60,
		MaxTime:  *maxTime,
		Parallel: *parallel,
	})
	printResults(os.Stdout, cfg.Name, results)
	return err
}

func printResults(w io.Writer, name string, results []game.SimulationResult) {
	var victories, defeats, unfinished, stages int
	var elapsed float64

	fmt.Fprintf(w, "%-8s %-10s %-6s %-10s %s\n", "seed", "outcome", "stage", "time", "tree hp")
	for _, r := range results {
		outcome := r.Outcome.String()
		switch {
		case r.Cancelled:
			outcome = "cancelled"
		case r.TimedOut:
			outcome = "timeout"
		}
		fmt.Fprintf(w, "%-8d %-10s %-6d %-10.1f %.2f\n", r.Seed, outcome, r.Stage, r.Elapsed, r.TreeHP)

		switch r.Outcome {
		case types.OutcomeVictory:
			victories++
		case types.OutcomeDefeat:
			defeats++
		default:
			unfinished++
		}
		stages += r.Stage
		elapsed += r.Elapsed
	}

	if len(results) == 0 {
		return
	}
	n := float64(len(results))
	fmt.Fprintf(w, "\n%s: %d matches, %d victories, %d defeats, %d unfinished, avg stage %.2f, avg time %.1fs\n",
		name, len(results), victories, defeats, unfinished, float64(stages)/n, elapsed/n)
}
