package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/service/commands"
)

type mockMessaging struct {
	mock.Mock
}

func (m *mockMessaging) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	args := m.Called(mode, verifyToken, challenge)
	return args.String(0), args.Error(1)
}

func (m *mockMessaging) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockMessaging) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMessaging) Notify(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) RecentDayReports(ctx context.Context, limit int) ([]models.DayReport, error) {
	args := m.Called(ctx, limit)
	reports, _ := args.Get(0).([]models.DayReport)
	return reports, args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	c.Writer.WriteHeaderNow()
	return w
}

func TestWebhookHandler_Verify(t *testing.T) {
	svc := new(mockMessaging)
	svc.On("VerifyWebhookToken", "subscribe", "tok", "42").Return("42", nil).Once()
	svc.On("VerifyWebhookToken", "subscribe", "bad", "42").Return("", errors.New("invalid verify token")).Once()
	h := NewWebhookHandler(svc, nil)

	w := perform(h.Verify, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=tok&hub.challenge=42", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = perform(h.Verify, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=bad&hub.challenge=42", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookHandler_Receive(t *testing.T) {
	svc := new(mockMessaging)
	svc.On("HandleWebhook", mock.Anything, mock.MatchedBy(func(p models.WebhookPayload) bool {
		return p.Object == "whatsapp_business_account"
	})).Return(nil).Once()
	h := NewWebhookHandler(svc, nil)

	w := perform(h.Receive, http.MethodPost, "/webhook", `{"object":"whatsapp_business_account","entry":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(h.Receive, http.MethodPost, "/webhook", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestWebhookHandler_ReceiveIgnoresOtherObjects(t *testing.T) {
	svc := new(mockMessaging)
	h := NewWebhookHandler(svc, nil)

	w := perform(h.Receive, http.MethodPost, "/webhook", `{"object":"page","entry":[]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything)
}

func TestWebhookHandler_SendMessage(t *testing.T) {
	svc := new(mockMessaging)
	svc.On("SendOutbound", mock.Anything, models.OutboundMessageRequest{To: "224", Message: "hello"}).Return(nil).Once()
	h := NewWebhookHandler(svc, nil)

	w := perform(h.SendMessage, http.MethodPost, "/send-message", `{"to":"224","message":"hello"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	var reply models.OutboundMessageReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, models.OutboundMessageReply{To: "224"}, reply)

	w = perform(h.SendMessage, http.MethodPost, "/send-message", `{"to":"224"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestWebhookHandler_SendMessageBroadcasts(t *testing.T) {
	svc := new(mockMessaging)
	svc.On("Notify", mock.Anything, "market opens at dawn").Return(nil).Once()
	svc.On("Notify", mock.Anything, "again").Return(errors.New("rate limited")).Once()
	h := NewWebhookHandler(svc, nil)

	w := perform(h.SendMessage, http.MethodPost, "/send-message", `{"message":"market opens at dawn"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"broadcast":true}`, w.Body.String())

	w = perform(h.SendMessage, http.MethodPost, "/send-message", `{"message":"again"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	svc.AssertNotCalled(t, "SendOutbound", mock.Anything, mock.Anything)
	svc.AssertExpectations(t)
}

func newDispatcher(t *testing.T) commands.Dispatcher {
	t.Helper()
	g, err := farm.NewGame(farm.DefaultSettings())
	require.NoError(t, err)
	return commands.NewService(g, nil, nil, nil)
}

func TestGameHandler_Reports(t *testing.T) {
	reports := new(mockReports)
	reports.On("RecentDayReports", mock.Anything, 3).Return([]models.DayReport{{Day: 7}}, nil).Once()
	reports.On("RecentDayReports", mock.Anything, 10).Return(nil, errors.New("mongo down")).Once()
	h := NewGameHandler(newDispatcher(t), reports, nil)

	w := perform(h.Reports, http.MethodGet, "/api/reports?limit=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"day":7`)

	w = perform(h.Reports, http.MethodGet, "/api/reports", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = perform(h.Reports, http.MethodGet, "/api/reports?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	reports.AssertExpectations(t)
}

func TestGameHandler_AdvanceDay(t *testing.T) {
	h := NewGameHandler(newDispatcher(t), nil, nil)

	w := perform(h.AdvanceDay, http.MethodPost, "/api/day", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"day":2`)
	assert.Contains(t, w.Body.String(), `"deaths":[]`)
}
