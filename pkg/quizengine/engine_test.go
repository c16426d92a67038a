package quizengine

import (
	"errors"
	"fmt"
	"testing"
)

type fakeClient struct {
	questions []Question // 全量题目，按批切分
	verdict   *Verdict
	submitErr error
	loadErr   error
	submitted []uint
}

func (f *fakeClient) LoadBatch(videoID string, batchIndex int) ([]Question, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	start := batchIndex * BatchSize
	if start >= len(f.questions) {
		return nil, false, nil
	}
	end := start + BatchSize
	if end > len(f.questions) {
		end = len(f.questions)
	}
	return f.questions[start:end], end < len(f.questions), nil
}

func (f *fakeClient) Submit(videoID string, questionID uint, answer string) (*Verdict, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, questionID)
	return f.verdict, nil
}

func makeClient(n int, verdict *Verdict) *fakeClient {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{ID: uint(i + 1), SkillTag: "golang", QuestionText: fmt.Sprintf("q%d", i+1)}
	}
	return &fakeClient{questions: questions, verdict: verdict}
}

func answerBatch(t *testing.T, e *Engine, want int) {
	t.Helper()
	for i := 0; i < want; i++ {
		if e.State() != StateActive {
			t.Fatalf("question %d: state = %s, want active", i, e.State())
		}
		if _, err := e.SubmitAnswer("回答"); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := e.Next(); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}
}

// 6 题：第一批 1-3，答完后才提供第二批；第二批重置批内计数
func TestTwoBatchFlow(t *testing.T) {
	client := makeClient(6, &Verdict{Passed: true, Confidence: "high", Feedback: "好"})
	e := NewEngine("v1", client)

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if e.State() != StateActive || e.AbsoluteIndex() != 0 {
		t.Fatalf("after start: state=%s index=%d", e.State(), e.AbsoluteIndex())
	}

	// 答完前两题后还不能加载第二批
	answerBatch(t, e, 2)
	if e.HasMoreBatch() {
		t.Fatal("load more must not be offered mid-batch")
	}

	answerBatch(t, e, 1)
	if e.State() != StateComplete {
		t.Fatalf("state = %s, want complete", e.State())
	}
	if !e.HasMoreBatch() {
		t.Fatal("load more must be offered with 6 questions")
	}
	if e.PassedInBatch() != 3 {
		t.Fatalf("passedInBatch = %d, want 3", e.PassedInBatch())
	}

	if err := e.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if e.BatchIndex() != 1 || e.PassedInBatch() != 0 {
		t.Fatalf("batch=%d passed=%d, want 1/0", e.BatchIndex(), e.PassedInBatch())
	}
	if e.AbsoluteIndex() != 3 {
		t.Fatalf("absolute index = %d, want 3", e.AbsoluteIndex())
	}

	answerBatch(t, e, 3)
	if e.State() != StateComplete || e.HasMoreBatch() {
		t.Fatalf("after final batch: state=%s hasMore=%v", e.State(), e.HasMoreBatch())
	}
	if len(client.submitted) != 6 {
		t.Fatalf("submitted %d answers, want 6", len(client.submitted))
	}
}

// 正好 3 题：永远不提供第二批
func TestExactlyThreeQuestionsNoLoadMore(t *testing.T) {
	e := NewEngine("v1", makeClient(3, &Verdict{Passed: true, Confidence: "low", Feedback: "好"}))

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerBatch(t, e, 3)

	if e.State() != StateComplete {
		t.Fatalf("state = %s, want complete", e.State())
	}
	if e.HasMoreBatch() {
		t.Fatal("load more must never be offered with exactly 3 questions")
	}
	if err := e.LoadMore(); !errors.Is(err, ErrNoMore) {
		t.Fatalf("load more: got %v, want ErrNoMore", err)
	}
}

// 无题目视频进入 no-questions 终态
func TestNoQuestionsTerminal(t *testing.T) {
	e := NewEngine("v1", makeClient(0, nil))

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if e.State() != StateNoQuestions {
		t.Fatalf("state = %s, want no-questions", e.State())
	}
}

// 拉题失败同样进入 no-questions，不向用户抛错
func TestLoadFailureTerminal(t *testing.T) {
	client := makeClient(6, nil)
	client.loadErr = errors.New("network down")
	e := NewEngine("v1", client)

	if err := e.Start(); err != nil {
		t.Fatalf("start must not surface load errors: %v", err)
	}
	if e.State() != StateNoQuestions {
		t.Fatalf("state = %s, want no-questions", e.State())
	}
}

// 提交失败：宽松兜底结论，流程继续
func TestSubmitFallback(t *testing.T) {
	client := makeClient(3, nil)
	client.submitErr = errors.New("grading down")
	e := NewEngine("v1", client)

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	verdict, err := e.SubmitAnswer("回答")
	if err != nil {
		t.Fatalf("submit must not surface errors: %v", err)
	}
	if !verdict.Passed || verdict.Confidence != "low" || verdict.Feedback == "" {
		t.Fatalf("fallback verdict = %+v", verdict)
	}
	if e.State() != StateFeedback {
		t.Fatalf("state = %s, want feedback", e.State())
	}
	if e.PassedInBatch() != 1 {
		t.Fatalf("fallback pass must count, got %d", e.PassedInBatch())
	}
}

// 未通过不增加本批通过计数
func TestFailedAnswerNotCounted(t *testing.T) {
	e := NewEngine("v1", makeClient(3, &Verdict{Passed: false, Confidence: "high", Feedback: "偏题"}))

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.SubmitAnswer("随便"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if e.PassedInBatch() != 0 {
		t.Fatalf("passedInBatch = %d, want 0", e.PassedInBatch())
	}
}

// complete → cta 只能显式触发；其余非法转换全部拒绝
func TestStateGuards(t *testing.T) {
	e := NewEngine("v1", makeClient(3, &Verdict{Passed: true, Confidence: "low", Feedback: "好"}))

	if _, err := e.SubmitAnswer("x"); !errors.Is(err, ErrWrongState) {
		t.Errorf("submit in cta: %v", err)
	}
	if err := e.Next(); !errors.Is(err, ErrWrongState) {
		t.Errorf("next in cta: %v", err)
	}
	if err := e.Restart(); !errors.Is(err, ErrWrongState) {
		t.Errorf("restart in cta: %v", err)
	}

	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrWrongState) {
		t.Errorf("double start: %v", err)
	}

	answerBatch(t, e, 3)
	if err := e.Restart(); err != nil {
		t.Fatalf("restart from complete: %v", err)
	}
	if e.State() != StateCTA {
		t.Fatalf("state = %s, want cta", e.State())
	}
}
