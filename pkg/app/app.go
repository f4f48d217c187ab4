// Package app 提供桌面端的 ebiten 包装器
//
// 该包将对局、键盘输入、机器人补位和记录保存组合成 ebiten.Game，
// main.go 只负责解析参数和初始化嵌入资源。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/game"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 960
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 540

	tickDelta = 1.0 / 60.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// MatchConfig 对局配置文件路径
	MatchConfig string
	// Seed 随机种子，0 表示使用配置文件中的种子
	Seed int64
	// Bots 开局时加入的机器人数量（键盘玩家之外），负数表示使用已保存的设置
	Bots int
}

// App 桌面端应用，实现 ebiten.Game 接口
type App struct {
	cfg      Config
	matchCfg *config.MatchConfig
	records  *game.RecordManager
	settings *game.SettingsManager

	match    *game.Match
	human    int
	bots     []*game.Bot
	recorded bool

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.MatchConfig == "" {
		cfg.MatchConfig = config.DefaultMatchConfigPath
	}
	matchCfg, err := config.LoadMatchConfig(cfg.MatchConfig)
	if err != nil {
		return nil, fmt.Errorf("对局配置加载失败: %w", err)
	}

	// 无法打开存储时降级为仅内存记录
	gdataManager, err := gdata.Open(gdata.Config{AppName: "heartband"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (records are kept in memory)", err)
		gdataManager = nil
	}

	a := &App{
		cfg:      cfg,
		matchCfg: matchCfg,
		records:  game.NewRecordManager(gdataManager, game.DefaultHistoryLimit),
		settings: game.NewSettingsManager(gdataManager),
	}
	if a.cfg.Bots < 0 {
		a.cfg.Bots = a.settings.GetSettings().Bots
	}
	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

// restart 开始新的一局：键盘玩家 + 配置数量的机器人
func (a *App) restart() error {
	m, err := game.NewMatch(a.matchCfg, a.cfg.Seed)
	if err != nil {
		return fmt.Errorf("创建对局失败: %w", err)
	}
	human, err := m.PlayerJoined()
	if err != nil {
		return err
	}

	a.match = m
	a.human = human
	a.bots = a.bots[:0]
	a.recorded = false
	for i := 0; i < a.cfg.Bots; i++ {
		if err := a.addBot(); err != nil {
			log.Printf("[App] Warning: %v", err)
			break
		}
	}
	log.Printf("[App] Match started (seed=%d, bots=%d)", m.Seed(), len(a.bots))
	return nil
}

func (a *App) addBot() error {
	index, err := a.match.PlayerJoined()
	if err != nil {
		return fmt.Errorf("failed to add bot: %w", err)
	}
	a.bots = append(a.bots, game.NewBot(index))
	return nil
}

func (a *App) removeBot() {
	if len(a.bots) == 0 {
		return
	}
	last := a.bots[len(a.bots)-1]
	if err := a.match.PlayerLeft(last.Index); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.bots = a.bots[:len(a.bots)-1]
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.match.Outcome() != types.OutcomeRunning {
		if err := a.restart(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if err := a.addBot(); err != nil {
			log.Printf("[App] %v", err)
		}
		a.saveBotCount()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.removeBot()
		a.saveBotCount()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.settings.SetShowHelp(!a.settings.GetSettings().ShowHelp)
		a.saveSettings()
	}

	if err := a.match.SetPlayerInput(a.human, keyboardInput()); err != nil {
		return err
	}
	snap := a.match.Snapshot()
	for _, b := range a.bots {
		if err := a.match.SetPlayerInput(b.Index, b.Input(&snap)); err != nil {
			return err
		}
	}

	a.match.Update(tickDelta)
	a.recordOutcome()
	return nil
}

// recordOutcome 对局结束时追加一条记录（每局一次）
func (a *App) recordOutcome() {
	if a.recorded || a.match.Outcome() == types.OutcomeRunning {
		return
	}
	a.recorded = true
	if err := a.records.Append(game.RecordFor(a.match, time.Now())); err != nil {
		log.Printf("[App] Warning: failed to save record: %v", err)
	}
}

// saveBotCount 记住当前机器人数量，下次启动时使用
func (a *App) saveBotCount() {
	a.cfg.Bots = len(a.bots)
	a.settings.SetBots(len(a.bots))
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// updateWindow F11 切换全屏，退出全屏后延迟几帧恢复窗口大小
func (a *App) updateWindow() {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
	a.saveSettings()
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.match.Snapshot()
	drawWorld(screen, &snap)
	drawHUD(screen, &snap, a.records.BestStage(), a.settings.GetSettings().ShowHelp)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Records 返回记录管理器
func (a *App) Records() *game.RecordManager {
	return a.records
}

// Match 返回当前对局
func (a *App) Match() *game.Match {
	return a.match
}
