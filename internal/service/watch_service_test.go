package service

import (
	"context"
	"errors"
	"testing"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"
)

type fakeSegmentSource struct {
	segments []model.VideoTopicSegment
	err      error
}

func (f *fakeSegmentSource) FindByVideo(videoID string) ([]model.VideoTopicSegment, error) {
	return f.segments, f.err
}

type fakeInterestSink struct {
	added map[string]int64
	err   error
}

func (f *fakeInterestSink) AtomicAdd(userID, tag string, delta int64) error {
	if f.err != nil {
		return f.err
	}
	if f.added == nil {
		f.added = map[string]int64{}
	}
	f.added[tag] += delta
	return nil
}

func (f *fakeInterestSink) ListByUser(userID string) ([]model.InterestScore, error) {
	return nil, nil
}

type fakeCreatorSink struct {
	credited map[string]int64
	err      error
}

func (f *fakeCreatorSink) AtomicAddWatchSeconds(userID, channelID string, deltaSeconds int64) error {
	if f.err != nil {
		return f.err
	}
	if f.credited == nil {
		f.credited = map[string]int64{}
	}
	f.credited[channelID] += deltaSeconds
	return nil
}

type fakeChannelResolver struct {
	channelID *string
	err       error
}

func (f *fakeChannelResolver) ResolveChannelID(videoID string) (*string, error) {
	return f.channelID, f.err
}

type fakeAuditSink struct {
	events []*model.WatchAuditEvent
	err    error
}

func (f *fakeAuditSink) Append(e *model.WatchAuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func watchTestConfig() *config.Config {
	return &config.Config{
		Watch: config.WatchConfig{
			MinSessionSeconds:  30,
			MinDeltaSeconds:    5,
			SegmentCacheTTLMin: 10,
		},
	}
}

func newTestWatchService(segs *fakeSegmentSource, interest *fakeInterestSink, creator *fakeCreatorSink, resolver *fakeChannelResolver, audit *fakeAuditSink) *WatchService {
	return NewWatchService(segs, interest, creator, resolver, audit, nil, nil, watchTestConfig())
}

func TestProcessReportRejectsBadInput(t *testing.T) {
	audit := &fakeAuditSink{}
	interest := &fakeInterestSink{}
	svc := newTestWatchService(&fakeSegmentSource{}, interest, &fakeCreatorSink{}, &fakeChannelResolver{}, audit)

	cases := []struct {
		name   string
		userID string
		report WatchReport
	}{
		{"empty user", "", WatchReport{VideoID: "v1", CurrentTime: 60, Duration: 120, RealWatchSeconds: 60}},
		{"empty video", "u1", WatchReport{CurrentTime: 60, Duration: 120, RealWatchSeconds: 60}},
		{"zero duration", "u1", WatchReport{VideoID: "v1", CurrentTime: 60, RealWatchSeconds: 60}},
		{"zero position", "u1", WatchReport{VideoID: "v1", Duration: 120, RealWatchSeconds: 60}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ProcessReport(context.Background(), tc.userID, &tc.report)
			if !errors.Is(err, util.ErrInvalidReport) {
				t.Fatalf("expected ErrInvalidReport, got %v", err)
			}
		})
	}

	if len(audit.events) != 0 || len(interest.added) != 0 {
		t.Fatalf("rejected report must not write anything, audit=%d interest=%v", len(audit.events), interest.added)
	}
}

// 会话总时长低于下限：不计分、不计创作者时长，但审计事件照常落库
func TestProcessReportBelowSessionFloor(t *testing.T) {
	segs := &fakeSegmentSource{segments: []model.VideoTopicSegment{
		{Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100},
	}}
	interest := &fakeInterestSink{}
	creator := &fakeCreatorSink{}
	ch := "ch1"
	audit := &fakeAuditSink{}
	svc := newTestWatchService(segs, interest, creator, &fakeChannelResolver{channelID: &ch}, audit)

	result, err := svc.ProcessReport(context.Background(), "u1", &WatchReport{
		VideoID: "v1", CurrentTime: 100, Duration: 200, RealWatchSeconds: 29,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.BelowThreshold {
		t.Fatal("expected BelowThreshold")
	}
	if len(interest.added) != 0 {
		t.Fatalf("interest must not change below floor, got %v", interest.added)
	}
	if len(creator.credited) != 0 {
		t.Fatalf("creator stats must not change below floor, got %v", creator.credited)
	}
	if len(audit.events) != 1 {
		t.Fatalf("audit must be unconditional, got %d events", len(audit.events))
	}
}

func TestProcessReportScoresAndCredits(t *testing.T) {
	segs := &fakeSegmentSource{segments: []model.VideoTopicSegment{
		{Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100},
		{Tag: "concurrency", Weight: 8, StartPct: 20, EndPct: 80},
		{Tag: "channels", Weight: 5, StartPct: 60, EndPct: 100},
	}}
	interest := &fakeInterestSink{}
	creator := &fakeCreatorSink{}
	ch := "ch1"
	audit := &fakeAuditSink{}
	svc := newTestWatchService(segs, interest, creator, &fakeChannelResolver{channelID: &ch}, audit)

	// watchPct = 50
	result, err := svc.ProcessReport(context.Background(), "u1", &WatchReport{
		VideoID: "v1", CurrentTime: 100, Duration: 200, RealWatchSeconds: 95,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WatchPct != 50 {
		t.Fatalf("watchPct = %v, want 50", result.WatchPct)
	}
	// golang: 50% of weight 10 = 5; concurrency: (50-20)/(80-20)*8 = 4; channels: 未进入 = 0
	if interest.added["golang"] != 5 {
		t.Errorf("golang = %d, want 5", interest.added["golang"])
	}
	if interest.added["concurrency"] != 4 {
		t.Errorf("concurrency = %d, want 4", interest.added["concurrency"])
	}
	if _, ok := interest.added["channels"]; ok {
		t.Error("channels segment not entered, must award nothing")
	}
	if creator.credited["ch1"] != 95 {
		t.Errorf("creator credited %d, want 95", creator.credited["ch1"])
	}
	if len(audit.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.events))
	}
}

// 位置超出时长（直播回放边界），watchPct 封顶 100
func TestProcessReportCapsWatchPct(t *testing.T) {
	segs := &fakeSegmentSource{segments: []model.VideoTopicSegment{
		{Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100},
	}}
	interest := &fakeInterestSink{}
	svc := newTestWatchService(segs, interest, &fakeCreatorSink{}, &fakeChannelResolver{}, &fakeAuditSink{})

	result, err := svc.ProcessReport(context.Background(), "u1", &WatchReport{
		VideoID: "v1", CurrentTime: 250, Duration: 200, RealWatchSeconds: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WatchPct != 100 {
		t.Fatalf("watchPct = %v, want 100", result.WatchPct)
	}
	if interest.added["golang"] != 10 {
		t.Fatalf("golang = %d, want full weight 10", interest.added["golang"])
	}
}

// 子步骤独立性：兴趣分写入失败不影响创作者时长与审计
func TestProcessReportSubStepsIndependent(t *testing.T) {
	segs := &fakeSegmentSource{segments: []model.VideoTopicSegment{
		{Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100},
	}}
	interest := &fakeInterestSink{err: errors.New("db down")}
	creator := &fakeCreatorSink{}
	ch := "ch1"
	audit := &fakeAuditSink{}
	svc := newTestWatchService(segs, interest, creator, &fakeChannelResolver{channelID: &ch}, audit)

	result, err := svc.ProcessReport(context.Background(), "u1", &WatchReport{
		VideoID: "v1", CurrentTime: 100, Duration: 200, RealWatchSeconds: 60,
	})
	if err != nil {
		t.Fatalf("scoring failure must not fail the call: %v", err)
	}
	if len(result.AwardedPoints) != 0 {
		t.Fatalf("no points should be recorded on sink failure, got %v", result.AwardedPoints)
	}
	if creator.credited["ch1"] != 60 {
		t.Errorf("creator credit must survive interest failure, got %d", creator.credited["ch1"])
	}
	if len(audit.events) != 1 {
		t.Errorf("audit must survive interest failure, got %d", len(audit.events))
	}
}

// 未认领视频（无频道）：跳过创作者时长，不算错误
func TestProcessReportUnclaimedVideo(t *testing.T) {
	segs := &fakeSegmentSource{segments: nil}
	creator := &fakeCreatorSink{}
	svc := newTestWatchService(segs, &fakeInterestSink{}, creator, &fakeChannelResolver{channelID: nil}, &fakeAuditSink{})

	result, err := svc.ProcessReport(context.Background(), "u1", &WatchReport{
		VideoID: "v1", CurrentTime: 100, Duration: 200, RealWatchSeconds: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(creator.credited) != 0 {
		t.Fatalf("no channel, no credit; got %v", creator.credited)
	}
	if result.ChannelID != nil {
		t.Fatal("result must not carry a channel id")
	}
}

func TestSegmentPoints(t *testing.T) {
	seg := model.VideoTopicSegment{Tag: "t", Weight: 10, StartPct: 30, EndPct: 70}

	cases := []struct {
		watchPct float64
		want     int64
	}{
		{0, 0},
		{30, 0},   // 正好在起点，未进入
		{50, 5},   // 一半
		{56, 7},   // (56-30)/40*10 = 6.5 -> 四舍五入 7
		{70, 10},  // 正好看完
		{100, 10}, // 超过终点，满分
	}

	for _, tc := range cases {
		if got := SegmentPoints(seg, tc.watchPct); got != tc.want {
			t.Errorf("SegmentPoints(%.0f%%) = %d, want %d", tc.watchPct, got, tc.want)
		}
	}
}
