package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// 連続した書き込みをまとめて1回の再読込にするための待ち時間
const reloadDebounceTime = 500 * time.Millisecond

// Watcher は設定ファイルの変更を監視して再読込する構造体
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	updates  chan *Config
	stopChan chan struct{}
}

// NewWatcher は設定ファイルの監視を開始する。
// エディタによる置き換え保存を拾えるよう、ファイルではなく
// 親ディレクトリを監視する。
func NewWatcher(configPath string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  watcher,
		path:     configPath,
		updates:  make(chan *Config, 1),
		stopChan: make(chan struct{}),
	}
	go w.watchEvents()
	return w, nil
}

// Updates は再読込された設定が流れるチャネルを返す
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close は監視を停止する
func (w *Watcher) Close() {
	close(w.stopChan)
	w.watcher.Close()
}

// watchEvents はfsnotifyのイベントを監視する
func (w *Watcher) watchEvents() {
	reloadTimer := time.NewTimer(reloadDebounceTime)
	reloadTimer.Stop()
	pendingReload := false

	for {
		select {
		case <-w.stopChan:
			return

		case <-reloadTimer.C:
			if pendingReload {
				pendingReload = false
				w.reload()
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				if !pendingReload {
					pendingReload = true
					reloadTimer.Reset(reloadDebounceTime)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("設定ファイル監視エラー: %v", err)
		}
	}
}

// reload は設定ファイルを読み直して購読側へ送る。
// 受け手が追いついていない場合は古い値を捨てて置き換える。
func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		log.Printf("設定ファイルの再読込に失敗しました: %v", err)
		return
	}
	select {
	case w.updates <- cfg:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- cfg
	}
}
