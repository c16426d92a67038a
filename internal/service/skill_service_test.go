package service

import (
	"errors"
	"fmt"
	"testing"

	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"
)

type fakeSkillStore struct {
	entries map[string]*model.SkillEntry
	err     error
}

func newFakeSkillStore() *fakeSkillStore {
	return &fakeSkillStore{entries: map[string]*model.SkillEntry{}}
}

func (f *fakeSkillStore) key(userID, slug string) string {
	return userID + "/" + slug
}

func (f *fakeSkillStore) FindByUserAndTopic(userID, topicSlug string) (*model.SkillEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.entries[f.key(userID, topicSlug)]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeSkillStore) Upsert(entry *model.SkillEntry) error {
	if f.err != nil {
		return f.err
	}
	copied := *entry
	f.entries[f.key(entry.UserID, entry.TopicSlug)] = &copied
	return nil
}

func (f *fakeSkillStore) ListByUser(userID string) ([]model.SkillEntry, error) {
	var out []model.SkillEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func passAttempt(videoID string, confidence model.Confidence) *model.QuizAttempt {
	return &model.QuizAttempt{
		VideoID:    videoID,
		Question:   "什么是 goroutine？",
		UserAnswer: "由 Go 运行时调度的轻量级线程",
		AIFeedback: "答得好",
		Confidence: confidence,
		Passed:     true,
	}
}

func TestRecordPassFirstTime(t *testing.T) {
	store := newFakeSkillStore()
	svc := NewSkillService(store, nil)

	entry, err := svc.RecordPass("u1", "Go Concurrency", passAttempt("v1", model.ConfidenceMedium))
	if err != nil {
		t.Fatalf("first pass must succeed: %v", err)
	}
	if entry.TopicSlug != "go_concurrency" {
		t.Errorf("slug = %q, want go_concurrency", entry.TopicSlug)
	}
	if entry.QuizScore != 1 {
		t.Errorf("score = %d, want 1", entry.QuizScore)
	}
	if entry.Tier != model.TierUncommon {
		t.Errorf("tier = %s, want Uncommon", entry.Tier)
	}
	if len(entry.Portfolio) != 0 {
		t.Errorf("medium confidence must not enter portfolio, got %d items", len(entry.Portfolio))
	}
}

func TestRecordPassScoreCap(t *testing.T) {
	store := newFakeSkillStore()
	store.entries["u1/golang"] = &model.SkillEntry{
		UserID: "u1", TopicSlug: "golang", QuizScore: 100, Tier: model.TierMythical,
	}
	svc := NewSkillService(store, nil)

	entry, err := svc.RecordPass("u1", "golang", passAttempt("v1", model.ConfidenceLow))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.QuizScore != 100 {
		t.Errorf("score must stay capped at 100, got %d", entry.QuizScore)
	}
	if entry.Tier != model.TierMythical {
		t.Errorf("tier = %s, want Mythical", entry.Tier)
	}
}

func TestRecordPassTierProgression(t *testing.T) {
	store := newFakeSkillStore()
	svc := NewSkillService(store, nil)

	wantTiers := map[int]model.SkillTier{
		1:   model.TierUncommon,
		25:  model.TierUncommon,
		26:  model.TierRare,
		51:  model.TierEpic,
		76:  model.TierLegendary,
		100: model.TierMythical,
	}

	for i := 1; i <= 100; i++ {
		entry, err := svc.RecordPass("u1", "golang", passAttempt("v1", model.ConfidenceLow))
		if err != nil {
			t.Fatalf("pass %d failed: %v", i, err)
		}
		if entry.QuizScore != i {
			t.Fatalf("pass %d: score = %d", i, entry.QuizScore)
		}
		if want, ok := wantTiers[i]; ok && entry.Tier != want {
			t.Errorf("score %d: tier = %s, want %s", i, entry.Tier, want)
		}
	}
}

func TestRecordPassPortfolio(t *testing.T) {
	store := newFakeSkillStore()
	svc := NewSkillService(store, nil)

	// 4 次高置信度通过，精选答案只留最近 3 条，最新在前
	for i := 1; i <= 4; i++ {
		attempt := passAttempt(fmt.Sprintf("v%d", i), model.ConfidenceHigh)
		if _, err := svc.RecordPass("u1", "golang", attempt); err != nil {
			t.Fatalf("pass %d failed: %v", i, err)
		}
	}

	entry, err := svc.GetSkill("u1", "golang")
	if err != nil {
		t.Fatalf("GetSkill failed: %v", err)
	}
	if len(entry.Portfolio) != model.PortfolioSize {
		t.Fatalf("portfolio size = %d, want %d", len(entry.Portfolio), model.PortfolioSize)
	}
	for i, wantVideo := range []string{"v4", "v3", "v2"} {
		if entry.Portfolio[i].VideoID != wantVideo {
			t.Errorf("portfolio[%d] = %s, want %s", i, entry.Portfolio[i].VideoID, wantVideo)
		}
	}

	// 低置信度通过加分但不动精选答案
	if _, err := svc.RecordPass("u1", "golang", passAttempt("v5", model.ConfidenceLow)); err != nil {
		t.Fatalf("low-confidence pass failed: %v", err)
	}
	entry, _ = svc.GetSkill("u1", "golang")
	if entry.Portfolio[0].VideoID != "v4" {
		t.Errorf("low confidence must not touch portfolio, head = %s", entry.Portfolio[0].VideoID)
	}
	if entry.QuizScore != 5 {
		t.Errorf("score = %d, want 5", entry.QuizScore)
	}
}

func TestRecordPassInvalidInput(t *testing.T) {
	svc := NewSkillService(newFakeSkillStore(), nil)

	if _, err := svc.RecordPass("", "golang", passAttempt("v1", model.ConfidenceLow)); !errors.Is(err, util.ErrInvalidReport) {
		t.Errorf("empty user: got %v", err)
	}
	// 归一化后为空的主题名
	if _, err := svc.RecordPass("u1", "!!!", passAttempt("v1", model.ConfidenceLow)); !errors.Is(err, util.ErrInvalidReport) {
		t.Errorf("empty slug: got %v", err)
	}
}

func TestGetSkillNotFound(t *testing.T) {
	svc := NewSkillService(newFakeSkillStore(), nil)

	if _, err := svc.GetSkill("u1", "rust"); !errors.Is(err, util.ErrSkillNotFound) {
		t.Errorf("got %v, want ErrSkillNotFound", err)
	}
}
