package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	gamepad "github.com/char5742/gamepad-port"
	"github.com/char5742/gamepad-port/internal/config"
)

func main() {
	// コマンドライン引数の解析
	configPath := flag.String("config", "", "設定ファイルのパス (指定しない場合はデフォルトパスを使用)")
	deviceDir := flag.String("dir", "", "監視するデバイスディレクトリ (指定しない場合は設定に従う)")
	flag.Parse()

	// デフォルト設定ファイルパスの設定
	defaultConfigPath := ""
	configDir, err := config.GetDefaultConfigDir()
	if err == nil {
		defaultConfigPath = filepath.Join(configDir, "config.toml")
	}

	// 設定ファイルパスの決定
	cfgPath := defaultConfigPath
	if *configPath != "" {
		cfgPath = *configPath
	}

	// 設定ファイルの読み込み
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("設定ファイルの読み込みに失敗しました: %v\nデフォルト設定を使用します\n", err)
			cfg = config.DefaultConfig()
		} else {
			fmt.Printf("設定ファイルを読み込みました: %s\n", cfgPath)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	// 監視ディレクトリの決定
	dir := cfg.Monitor.DeviceDir
	if *deviceDir != "" {
		dir = *deviceDir
	}

	port := gamepad.NewWithDir(dir)
	port.SetQuirks(cfg.QuirkTable())

	// シグナルハンドラの設定
	handleSignals(port)

	// 設定ファイルの変更監視
	if cfgPath != "" {
		watcher, err := config.NewWatcher(cfgPath)
		if err != nil {
			log.Printf("設定ファイルの監視を開始できませんでした: %v", err)
		} else {
			defer watcher.Close()
			go func() {
				for c := range watcher.Updates() {
					port.SetQuirks(c.QuirkTable())
					log.Println("設定を再読込しました")
				}
			}()
		}
	}

	fmt.Printf("接続中のデバイス: %d\n", port.Count())
	runLoop(port)
}

// runLoop は状態変化を待ち受けて1行ずつ表示する
func runLoop(port *gamepad.Port) {
	for {
		slot, ok := port.Poll()
		if !ok {
			continue
		}
		device := port.Get(slot)
		if device == nil {
			continue
		}
		fmt.Printf("[%02d] %s\n", slot, renderState(device))
	}
}

// renderState はデバイスの状態を1行のテキストに整形する
func renderState(d *gamepad.Device) string {
	var b strings.Builder

	jx, jy := d.Joy()
	fmt.Fprintf(&b, "j(%+.2f,%+.2f)", jx, jy)
	if cx, cy, ok := d.Cam(); ok {
		fmt.Fprintf(&b, " c(%+.2f,%+.2f)", cx, cy)
	}
	lt, rt := d.Triggers()
	fmt.Fprintf(&b, " T(%.2f,%.2f)", lt, rt)

	labels := []struct {
		label string
		btn   gamepad.Btn
	}{
		{"a", gamepad.BtnA}, {"b", gamepad.BtnB},
		{"x", gamepad.BtnX}, {"y", gamepad.BtnY},
		{"←", gamepad.BtnLeft}, {"→", gamepad.BtnRight},
		{"↑", gamepad.BtnUp}, {"↓", gamepad.BtnDown},
		{"l", gamepad.BtnL}, {"r", gamepad.BtnR},
		{"w", gamepad.BtnW}, {"z", gamepad.BtnZ},
		{"f", gamepad.BtnF}, {"e", gamepad.BtnE},
		{"d", gamepad.BtnD}, {"c", gamepad.BtnC},
	}
	for _, l := range labels {
		mark := "□"
		if d.Btn(l.btn) {
			mark = "▣"
		}
		fmt.Fprintf(&b, " %s%s", l.label, mark)
	}
	return b.String()
}

func handleSignals(port *gamepad.Port) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("シャットダウンします...")
		port.Close()
		os.Exit(0)
	}()
}
