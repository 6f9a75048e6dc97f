package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	client "github.com/mamadbah2/farmsim/pkg/clients/whatsapp"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) SendTextMessage(ctx context.Context, req client.SendTextMessageRequest) (*client.SendMessageResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*client.SendMessageResponse)
	return resp, args.Error(1)
}

func (m *mockClient) SendReplyButtons(ctx context.Context, req client.SendReplyButtonsRequest) (*client.SendMessageResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*client.SendMessageResponse)
	return resp, args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	args := m.Called(ctx, cmd, sender)
	return args.String(0), args.Error(1)
}

func (m *mockDispatcher) AdvanceDay(ctx context.Context) (farm.DayResult, string) {
	args := m.Called(ctx)
	return args.Get(0).(farm.DayResult), args.String(1)
}

func (m *mockDispatcher) Status() farm.Status {
	return m.Called().Get(0).(farm.Status)
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(c client.Client, d *mockDispatcher) *MetaWhatsAppService {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "tok"}, "224000000001", c, d, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func textPayload(from, name, body string) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{
				Field: "messages",
				Value: models.WebhookValue{
					Contacts: []models.Contact{{WaID: from, Profile: models.ContactProfile{Name: name}}},
					Messages: []models.InboundMessage{{From: from, ID: "wamid.in", Type: "text", Text: &models.TextContent{Body: body}}},
				},
			}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := newTestService(new(mockClient), new(mockDispatcher))

	got, err := svc.VerifyWebhookToken("subscribe", "tok", "challenge-42")
	require.NoError(t, err)
	assert.Equal(t, "challenge-42", got)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "x")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "tok", "x")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhook_RepliesWithCommandResult(t *testing.T) {
	c := new(mockClient)
	d := new(mockDispatcher)
	d.On("HandleCommand", mock.Anything, mock.MatchedBy(func(cmd models.Command) bool {
		return cmd.Type == models.CommandBuy && len(cmd.Args) == 2
	}), "224000000002").Return("Bought 2 Hen for 60.00.", nil).Once()
	c.On("SendTextMessage", mock.Anything, client.SendTextMessageRequest{To: "224000000002", Body: "Bought 2 Hen for 60.00."}).
		Return(&client.SendMessageResponse{}, nil).Once()
	svc := newTestService(c, d)

	err := svc.HandleWebhook(context.Background(), textPayload("224000000002", "Aissatou", "buy hen 2"))

	require.NoError(t, err)
	c.AssertExpectations(t)
	d.AssertExpectations(t)
	session, ok := svc.sessions.GetSession("224000000002")
	require.True(t, ok)
	assert.Equal(t, "Aissatou", session.Name)
	assert.Equal(t, 1, session.Commands)
}

func TestHandleWebhook_FailuresBecomeFriendlyText(t *testing.T) {
	c := new(mockClient)
	d := new(mockDispatcher)
	d.On("HandleCommand", mock.Anything, mock.Anything, "224000000002").Return("", farm.ErrNoActionsLeft).Once()
	c.On("SendTextMessage", mock.Anything, client.SendTextMessageRequest{
		To:   "224000000002",
		Body: "You have no actions left today. Type sleep to end the day.",
	}).Return(&client.SendMessageResponse{}, nil).Once()
	svc := newTestService(c, d)

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("224000000002", "", "feed")))
	c.AssertExpectations(t)
}

func TestHandleWebhook_HelpAddsQuickActions(t *testing.T) {
	c := new(mockClient)
	d := new(mockDispatcher)
	d.On("HandleCommand", mock.Anything, mock.Anything, mock.Anything).Return("Commands ...", nil).Once()
	c.On("SendTextMessage", mock.Anything, mock.Anything).Return(&client.SendMessageResponse{}, nil).Once()
	c.On("SendReplyButtons", mock.Anything, mock.MatchedBy(func(req client.SendReplyButtonsRequest) bool {
		return len(req.Buttons) == 3 && req.Buttons[2].ID == "sleep"
	})).Return(&client.SendMessageResponse{}, nil).Once()
	svc := newTestService(c, d)

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("224000000002", "", "help")))
	c.AssertExpectations(t)
}

func TestHandleWebhook_IgnoresMediaAndReportsSendErrors(t *testing.T) {
	c := new(mockClient)
	d := new(mockDispatcher)
	svc := newTestService(c, d)

	media := textPayload("224000000002", "", "")
	media.Entry[0].Changes[0].Value.Messages[0] = models.InboundMessage{From: "224000000002", Type: "image"}
	require.NoError(t, svc.HandleWebhook(context.Background(), media))
	d.AssertNotCalled(t, "HandleCommand", mock.Anything, mock.Anything, mock.Anything)

	d.On("HandleCommand", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
	c.On("SendTextMessage", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	err := svc.HandleWebhook(context.Background(), textPayload("224000000002", "", "status"))
	assert.ErrorContains(t, err, "timeout")
}

func TestHandleWebhook_ForgetClearsSession(t *testing.T) {
	c := new(mockClient)
	d := new(mockDispatcher)
	c.On("SendTextMessage", mock.Anything, client.SendTextMessageRequest{To: "224000000002", Body: forgetReply}).
		Return(&client.SendMessageResponse{}, nil).Once()
	svc := newTestService(c, d)
	svc.sessions.Touch("224000000002", "Aissatou", fixedNow.Add(-time.Hour))

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("224000000002", "Aissatou", "forget")))

	_, ok := svc.sessions.GetSession("224000000002")
	assert.False(t, ok)
	d.AssertNotCalled(t, "HandleCommand", mock.Anything, mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestNotify_RecipientAndActivePlayers(t *testing.T) {
	c := new(mockClient)
	svc := newTestService(c, new(mockDispatcher))
	svc.sessions.Touch("224000000002", "", fixedNow.Add(-time.Hour))
	svc.sessions.Touch("224000000001", "", fixedNow.Add(-time.Hour))
	svc.sessions.Touch("224000000003", "", fixedNow.Add(-72*time.Hour))

	for _, to := range []string{"224000000001", "224000000002"} {
		c.On("SendTextMessage", mock.Anything, client.SendTextMessageRequest{To: to, Body: "Farm report"}).
			Return(&client.SendMessageResponse{}, nil).Once()
	}

	require.NoError(t, svc.Notify(context.Background(), "Farm report"))
	c.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "SendTextMessage", 2)
}
