package inbox

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod сколько ждать после последнего события по файлу
const DefaultQuietPeriod = 500 * time.Millisecond

// Watcher следит за входящей папкой и проверяет новые планы
type Watcher struct {
	dir       string
	processor *Processor
	quiet     time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher создаёт наблюдатель за папкой
func NewWatcher(dir string, processor *Processor) *Watcher {
	return &Watcher{
		dir:       dir,
		processor: processor,
		quiet:     DefaultQuietPeriod,
		pending:   make(map[string]*time.Timer),
	}
}

// Run обрабатывает уже лежащие файлы и следит за новыми до отмены ctx
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания входящей папки: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ошибка создания наблюдателя: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("ошибка добавления папки в наблюдатель: %w", err)
	}

	existing, err := filepath.Glob(filepath.Join(w.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range existing {
		if isPlanFile(path) {
			w.process(ctx, path)
		}
	}

	log.Printf("📂 Наблюдение за %s запущено", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPlanFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Ошибка наблюдателя: %v", err)
		}
	}
}

// schedule откладывает обработку, пока файл не перестанет меняться
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.quiet)
		return
	}
	w.pending[path] = time.AfterFunc(w.quiet, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.process(ctx, path)
	})
}

func (w *Watcher) process(ctx context.Context, path string) {
	result, err := w.processor.ProcessFile(ctx, path)
	if err != nil {
		log.Printf("⚠️ %s: %v", filepath.Base(path), err)
		return
	}
	if result.IsValid {
		log.Printf("✅ %s: план соответствует ограничениям", filepath.Base(path))
	} else {
		log.Printf("❌ %s: нарушений %d", filepath.Base(path), len(result.Violations))
	}
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
