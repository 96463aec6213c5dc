// Package goroutine запускает фоновые горутины сервиса: panic не роняет процесс,
// а долгоживущие циклы (хаб вебсокетов, очистка сессий) можно дождаться при остановке.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/ignatzorin/agency-site/internal/logger"
)

// PanicReporter получает значение panic и стек упавшей горутины.
type PanicReporter func(recovered any, stack []byte)

// Group учитывает запущенные горутины и перехватывает их panic.
type Group struct {
	report PanicReporter
	wg     sync.WaitGroup
}

func NewGroup(report PanicReporter) *Group {
	return &Group{report: report}
}

// Go запускает fn в отдельной горутине; Wait дождётся её завершения.
func (g *Group) Go(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.Guard(fn)()
	}()
}

// GoContext: Go для циклов, которые останавливаются по ctx.
func (g *Group) GoContext(ctx context.Context, fn func(context.Context)) {
	g.Go(func() { fn(ctx) })
}

// Guard оборачивает fn в recover без учёта в Wait. Нужен для колбэков,
// которые запускает не наш код (time.AfterFunc).
func (g *Group) Guard(fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				g.report(r, debug.Stack())
			}
		}()
		fn()
	}
}

// Wait ждёт горутины, запущенные через Go, не дольше timeout.
// Возвращает false, если какие-то из них ещё работают.
func (g *Group) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// logPanic берёт логгер в момент вызова: Init может отработать позже инициализации пакета.
func logPanic(recovered any, stack []byte) {
	logger.WithComponent("goroutine").
		WithField("panic", fmt.Sprint(recovered)).
		WithField("stack", string(stack)).
		Error("panic in background goroutine")
}

// Default: группа процесса, пишет panic в logrus.
var Default = NewGroup(logPanic)

func SafeGo(fn func()) {
	Default.Go(fn)
}

func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	Default.GoContext(ctx, fn)
}

func Guard(fn func()) func() {
	return Default.Guard(fn)
}

// Wait ждёт горутины группы процесса.
func Wait(timeout time.Duration) bool {
	return Default.Wait(timeout)
}
