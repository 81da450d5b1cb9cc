package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var gotNumber, gotMessage, gotSender string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotNumber = r.FormValue("number")
		gotMessage = r.FormValue("message")
		gotSender = r.FormValue("sendername")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{GatewayURL: server.URL, APIKey: "key", SenderName: "FRONTOFFICE"})
	err := client.Send(context.Background(), "+639171234567", "Your appointment is CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "+639171234567", gotNumber)
	assert.Equal(t, "Your appointment is CONFIRMED", gotMessage)
	assert.Equal(t, "FRONTOFFICE", gotSender)
}

func TestClientSendGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{GatewayURL: server.URL})
	err := client.Send(context.Background(), "+639171234567", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClientSendValidatesInput(t *testing.T) {
	client := NewClient(Config{GatewayURL: "http://localhost"})
	assert.Error(t, client.Send(context.Background(), "", "hello"))
	assert.Error(t, client.Send(context.Background(), "+639171234567", ""))
}
