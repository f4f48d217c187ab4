package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/heartband/pkg/app"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", config.DefaultMatchConfigPath, "对局配置文件")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示使用配置文件中的种子")
	bots       = flag.Int("bots", -1, "开局时加入的机器人数量，-1 表示使用上次的设置")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		MatchConfig: *configPath,
		Seed:        *seed,
		Bots:        *bots,
	})
	// 非 verbose 模式下 log 输出已被丢弃，错误直接写到 stderr
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Heartband")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
