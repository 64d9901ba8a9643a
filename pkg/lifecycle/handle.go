package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台服务的生命周期控制器。
// 它由 Manager 创建，服务退出前必须调用 Close。
type Handle struct {
	ctx   context.Context
	close func()
}

// Done 返回一个channel，当管理器发出停机信号时，该channel会关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Close 通知管理器其所属的服务已经完成关闭。
// 应该在服务的Goroutine退出前通过 defer 来调用。
func (h *Handle) Close() {
	h.close()
}

// Sleep 暂停指定的时长，但如果停机信号到达，则提前返回上下文错误。
// 这是后台循环中推荐使用的休眠方法。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.ctx.Err()
	case <-timer.C:
		return nil
	}
}
