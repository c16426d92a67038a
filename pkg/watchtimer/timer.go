// Package watchtimer 维护单个播放会话的真实观看时长。
// 时长只来自墙钟上 play→pause 区间的累加，与播放进度无关，
// 因此快进/拖动不会虚增观看时间。
package watchtimer

import (
	"sync"
	"time"
)

// 上报节奏与下限，需与服务端 watch 配置保持一致
const (
	DefaultReportInterval = 30 * time.Second
	MinSessionSeconds     = 30.0 // 会话总观看不足 30 秒不上报
	MinDeltaSeconds       = 5.0  // 距上次上报增量不足 5 秒不上报
)

// Report 一次观看上报的载荷，和 POST /api/watch/report 的请求体一致
type Report struct {
	VideoID          string  `json:"videoId"`
	CurrentTime      float64 `json:"currentTime"`
	Duration         float64 `json:"duration"`
	RealWatchSeconds float64 `json:"realWatchSeconds"`
}

// ReportFunc 把上报发往服务端。调用方负责网络与重试策略；
// 本包发出后即推进高水位，不关心发送结果（接受失败丢失）。
type ReportFunc func(Report)

// Clock 可注入的时钟，测试用
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// CallbackBox 可替换的回调容器。
// 播放器实例生命周期很长，外层重新配置时换掉盒子里的函数即可，
// 会话永远调用到最新一次注册的回调。
type CallbackBox struct {
	mu sync.RWMutex
	fn ReportFunc
}

func NewCallbackBox(fn ReportFunc) *CallbackBox {
	return &CallbackBox{fn: fn}
}

// Swap 替换当前回调，返回旧值
func (b *CallbackBox) Swap(fn ReportFunc) ReportFunc {
	b.mu.Lock()
	defer b.mu.Unlock()
	old := b.fn
	b.fn = fn
	return old
}

func (b *CallbackBox) get() ReportFunc {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fn
}

// Session 一个打开的播放器实例对应一个会话。
// UI 事件与周期上报协程都会访问，内部用互斥锁保护。
type Session struct {
	mu sync.Mutex

	videoID          string
	lastKnownPos     float64 // 播放器位置（秒），只用于百分比计分
	lastKnownDur     float64
	accumulated      float64    // 已关闭 play 区间的墙钟秒数之和，只增
	liveSegmentStart *time.Time // 当前打开的 play 区间起点；暂停/结束时清空
	lastReported     float64    // 已上报的高水位

	clock     Clock
	callbacks *CallbackBox
	interval  time.Duration

	closed bool
	stopCh chan struct{}
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithReportInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// NewSession 创建会话并启动周期上报协程。
// 会话销毁必须调用 Close，否则协程泄漏。
func NewSession(videoID string, callbacks *CallbackBox, opts ...Option) *Session {
	s := &Session{
		videoID:   videoID,
		clock:     realClock{},
		callbacks: callbacks,
		interval:  DefaultReportInterval,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.reportLoop()
	return s
}

func (s *Session) reportLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Flush()
		case <-s.stopCh:
			return
		}
	}
}

// Play 进入播放。已在播放中则先关闭再重开区间（不允许 Playing→Playing 自环），
// 这样重复的 play 事件不会丢失已经累积的墙钟时间。
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closeSegmentLocked()
	now := s.clock.Now()
	s.liveSegmentStart = &now
}

// Pause 关闭当前区间并尝试上报
func (s *Session) Pause() {
	s.pauseAndReport()
}

// Ended 播放自然结束，处理方式与暂停相同
func (s *Session) Ended() {
	s.pauseAndReport()
}

func (s *Session) pauseAndReport() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closeSegmentLocked()
	report, ok := s.buildReportLocked()
	s.mu.Unlock()

	if ok {
		s.send(report)
	}
}

// UpdatePosition 记录播放器位置与时长。拖动只会到这里，
// 不触碰墙钟累加器。
func (s *Session) UpdatePosition(positionSeconds, durationSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.lastKnownPos = positionSeconds
	if durationSeconds > 0 {
		s.lastKnownDur = durationSeconds
	}
}

// Flush 非破坏性读取当前累计值并尝试上报，周期协程每 ~30 秒调用一次
func (s *Session) Flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	report, ok := s.buildReportLocked()
	s.mu.Unlock()

	if ok {
		s.send(report)
	}
}

// Close 会话销毁：关闭打开的区间，做最后一次上报尝试，
// 然后把全部字段清零。新会话永远从零开始。
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.stopCh)

	s.closeSegmentLocked()
	report, ok := s.buildReportLocked()

	s.videoID = ""
	s.lastKnownPos = 0
	s.lastKnownDur = 0
	s.accumulated = 0
	s.lastReported = 0
	s.liveSegmentStart = nil
	s.mu.Unlock()

	if ok {
		s.send(report)
	}
}

// AccumulatedSeconds 当前真实观看秒数（含未关闭的区间），调试面板用
func (s *Session) AccumulatedSeconds() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWatchedLocked()
}

func (s *Session) closeSegmentLocked() {
	if s.liveSegmentStart == nil {
		return
	}
	s.accumulated += s.clock.Now().Sub(*s.liveSegmentStart).Seconds()
	s.liveSegmentStart = nil
}

func (s *Session) currentWatchedLocked() float64 {
	watched := s.accumulated
	if s.liveSegmentStart != nil {
		watched += s.clock.Now().Sub(*s.liveSegmentStart).Seconds()
	}
	return watched
}

// buildReportLocked 应用统一的上报策略；通过则立即推进高水位
// （先推进后发送：网络失败的增量接受丢失，不重试）。
func (s *Session) buildReportLocked() (Report, bool) {
	if s.lastKnownDur <= 0 {
		return Report{}, false
	}

	watched := s.currentWatchedLocked()
	if watched < MinSessionSeconds {
		return Report{}, false
	}

	delta := watched - s.lastReported
	if delta < MinDeltaSeconds {
		return Report{}, false
	}

	s.lastReported = watched

	return Report{
		VideoID:          s.videoID,
		CurrentTime:      s.lastKnownPos,
		Duration:         s.lastKnownDur,
		RealWatchSeconds: delta,
	}, true
}

func (s *Session) send(report Report) {
	if fn := s.callbacks.get(); fn != nil {
		fn(report)
	}
}
