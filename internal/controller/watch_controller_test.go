package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSegments struct{ segments []model.VideoTopicSegment }

func (s *stubSegments) FindByVideo(videoID string) ([]model.VideoTopicSegment, error) {
	return s.segments, nil
}

type stubInterest struct{ added map[string]int64 }

func (s *stubInterest) AtomicAdd(userID, tag string, delta int64) error {
	if s.added == nil {
		s.added = map[string]int64{}
	}
	s.added[tag] += delta
	return nil
}

func (s *stubInterest) ListByUser(userID string) ([]model.InterestScore, error) {
	return []model.InterestScore{{UserID: userID, Tag: "golang", Score: 42}}, nil
}

type stubCreator struct{}

func (stubCreator) AtomicAddWatchSeconds(userID, channelID string, deltaSeconds int64) error {
	return nil
}

type stubResolver struct{}

func (stubResolver) ResolveChannelID(videoID string) (*string, error) { return nil, nil }

type stubAudit struct{ count int }

func (s *stubAudit) Append(e *model.WatchAuditEvent) error {
	s.count++
	return nil
}

func watchRouter(interest *stubInterest, audit *stubAudit) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Watch: config.WatchConfig{MinSessionSeconds: 30, MinDeltaSeconds: 5, SegmentCacheTTLMin: 10}}
	svc := service.NewWatchService(
		&stubSegments{segments: []model.VideoTopicSegment{{Tag: "golang", Weight: 10, StartPct: 0, EndPct: 100}}},
		interest, stubCreator{}, stubResolver{}, audit, nil, nil, cfg,
	)
	ctrl := NewWatchController(svc)

	router := gin.New()
	// 测试里跳过 JWT，直接注入声明
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: "u1", Role: model.Viewer})
	})
	router.POST("/api/watch/report", ctrl.Report)
	router.GET("/api/interests", ctrl.ListInterests)
	return router
}

func TestReportEndpoint(t *testing.T) {
	interest := &stubInterest{}
	audit := &stubAudit{}
	router := watchRouter(interest, audit)

	body, _ := json.Marshal(service.WatchReport{
		VideoID: "v1", CurrentTime: 100, Duration: 200, RealWatchSeconds: 60,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/watch/report", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(5), interest.added["golang"])
	assert.Equal(t, 1, audit.count)
}

func TestReportEndpointRejectsMissingVideo(t *testing.T) {
	router := watchRouter(&stubInterest{}, &stubAudit{})

	req := httptest.NewRequest(http.MethodPost, "/api/watch/report", bytes.NewReader([]byte(`{"currentTime": 10}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListInterestsEndpoint(t *testing.T) {
	router := watchRouter(&stubInterest{}, &stubAudit{})

	req := httptest.NewRequest(http.MethodGet, "/api/interests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "golang")
}
