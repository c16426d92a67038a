// Package quizengine 实现测验的客户端状态机：分批取题、提交答案、
// 展示判题结论。每个视频最多两批、每批最多 3 题。
package quizengine

import (
	"errors"
)

// BatchSize 每批题目数。绝对题号 = batchIndex*BatchSize + 批内下标
const BatchSize = 3

type State string

const (
	StateCTA         State = "cta"      // 等待用户点击开始
	StateLoading     State = "loading"  // 拉取批次中
	StateActive      State = "active"   // 展示当前题目
	StateFeedback    State = "feedback" // 展示判题结论
	StateComplete    State = "complete" // 当前批次答完
	StateNoQuestions State = "no-questions"
)

var (
	ErrWrongState = errors.New("operation not allowed in current state")
	ErrNoMore     = errors.New("no further question batch available")
)

type Question struct {
	ID           uint   `json:"id"`
	SkillTag     string `json:"skillTag"`
	QuestionText string `json:"questionText"`
}

type Verdict struct {
	Passed     bool   `json:"passed"`
	Confidence string `json:"confidence"`
	Feedback   string `json:"feedback"`
}

// FallbackVerdict 提交或判题环节出任何问题时给用户看的兜底结论。
// 产品约定：技术故障永远不惩罚用户。
func FallbackVerdict() *Verdict {
	return &Verdict{
		Passed:     true,
		Confidence: "low",
		Feedback:   "回答已收到，做得不错！评分服务暂时繁忙，本次按通过处理，继续保持。",
	}
}

// Client 引擎对服务端的依赖：取一批题、提交一个答案
type Client interface {
	LoadBatch(videoID string, batchIndex int) (questions []Question, hasMore bool, err error)
	Submit(videoID string, questionID uint, answer string) (*Verdict, error)
}

// Engine 单个视频的测验会话。客户端 UI 单线程驱动，不做并发保护。
type Engine struct {
	videoID string
	client  Client

	state         State
	batchIndex    int
	index         int // 批内下标 0..2
	questions     []Question
	hasMore       bool
	passedInBatch int
	lastVerdict   *Verdict
}

func NewEngine(videoID string, client Client) *Engine {
	return &Engine{
		videoID: videoID,
		client:  client,
		state:   StateCTA,
	}
}

func (e *Engine) State() State          { return e.state }
func (e *Engine) BatchIndex() int       { return e.batchIndex }
func (e *Engine) PassedInBatch() int    { return e.passedInBatch }
func (e *Engine) LastVerdict() *Verdict { return e.lastVerdict }

// AbsoluteIndex 跨批次的绝对题号
func (e *Engine) AbsoluteIndex() int {
	return e.batchIndex*BatchSize + e.index
}

// CurrentQuestion 当前题目，仅 active/feedback 态有效
func (e *Engine) CurrentQuestion() (Question, bool) {
	if e.state != StateActive && e.state != StateFeedback {
		return Question{}, false
	}
	if e.index >= len(e.questions) {
		return Question{}, false
	}
	return e.questions[e.index], true
}

// HasMoreBatch 当前批次答完后是否可以加载下一批
func (e *Engine) HasMoreBatch() bool {
	return e.state == StateComplete && e.hasMore
}

// Start 用户点击开始：cta → loading → active。
// 视频没有题目时进入 no-questions 终态；拉题失败也归入 no-questions，
// 测验入口消失，不打断观看。
func (e *Engine) Start() error {
	if e.state != StateCTA {
		return ErrWrongState
	}
	e.state = StateLoading
	return e.loadBatch(0)
}

// LoadMore 用户主动选择第二批：complete → loading → active。
// 重置批内下标与本批通过计数。
func (e *Engine) LoadMore() error {
	if e.state != StateComplete {
		return ErrWrongState
	}
	if !e.hasMore {
		return ErrNoMore
	}
	e.state = StateLoading
	return e.loadBatch(e.batchIndex + 1)
}

func (e *Engine) loadBatch(batchIndex int) error {
	questions, hasMore, err := e.client.LoadBatch(e.videoID, batchIndex)
	if err != nil || len(questions) == 0 {
		e.state = StateNoQuestions
		return nil
	}
	e.batchIndex = batchIndex
	e.questions = questions
	e.hasMore = hasMore
	e.index = 0
	e.passedInBatch = 0
	e.lastVerdict = nil
	e.state = StateActive
	return nil
}

// SubmitAnswer 提交当前题的答案：active → feedback。
// 提交失败降级为宽松兜底结论，用户永远能看到一个结论。
func (e *Engine) SubmitAnswer(answer string) (*Verdict, error) {
	if e.state != StateActive {
		return nil, ErrWrongState
	}

	question := e.questions[e.index]
	verdict, err := e.client.Submit(e.videoID, question.ID, answer)
	if err != nil || verdict == nil {
		verdict = FallbackVerdict()
	}

	if verdict.Passed {
		e.passedInBatch++
	}
	e.lastVerdict = verdict
	e.state = StateFeedback
	return verdict, nil
}

// Next 看完反馈后继续：批内还有题则回到 active 出下一题，
// 否则本批结束进入 complete。
func (e *Engine) Next() error {
	if e.state != StateFeedback {
		return ErrWrongState
	}
	if e.index < len(e.questions)-1 {
		e.index++
		e.state = StateActive
		return nil
	}
	e.state = StateComplete
	return nil
}

// Restart 从 complete 回到 cta，只能由用户显式触发
func (e *Engine) Restart() error {
	if e.state != StateComplete {
		return ErrWrongState
	}
	e.batchIndex = 0
	e.index = 0
	e.questions = nil
	e.hasMore = false
	e.passedInBatch = 0
	e.lastVerdict = nil
	e.state = StateCTA
	return nil
}
