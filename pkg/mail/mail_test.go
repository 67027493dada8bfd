package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"teacher-eval/backend/config"
)

func testMailConfig(key string) *config.MailConfig {
	return &config.MailConfig{
		SendGridAPIKey: key,
		FromAddress:    "no-reply@school.test",
		FromName:       "Portal",
		SubjectPrefix:  "[Portal] ",
	}
}

func TestNewSender_NoKeyDisablesDelivery(t *testing.T) {
	s := NewSender(testMailConfig(""), zap.NewNop())
	assert.False(t, s.Enabled())
	assert.NoError(t, s.Send(context.Background(), Message{To: "a@b.c", Subject: "hi"}))
}

func TestNewSender_WithKey(t *testing.T) {
	s := NewSender(testMailConfig("SG.key"), zap.NewNop())
	assert.True(t, s.Enabled())
}

func TestSendGridSender_Send(t *testing.T) {
	var got map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender(testMailConfig("SG.key"), srv.URL)
	err := s.Send(context.Background(), Message{
		To:      "teacher@school.test",
		ToName:  "Teacher",
		Subject: "تم استلام البيانات",
		HTML:    "<p>ok</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer SG.key", auth)
	assert.Equal(t, "[Portal] تم استلام البيانات", got["subject"])
	personalizations := got["personalizations"].([]interface{})
	to := personalizations[0].(map[string]interface{})["to"].([]interface{})
	assert.Equal(t, "teacher@school.test", to[0].(map[string]interface{})["email"])
}

func TestSendGridSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewSendGridSender(testMailConfig("SG.bad"), srv.URL)
	err := s.Send(context.Background(), Message{To: "teacher@school.test", Subject: "x", HTML: "<p>x</p>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendGridSender_EmptyRecipient(t *testing.T) {
	s := NewSendGridSender(testMailConfig("SG.key"), "http://127.0.0.1:1")
	assert.Error(t, s.Send(context.Background(), Message{Subject: "x"}))
}
