package sendgrid_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
	sendgrid_client "github.com/Muppalavinisree/vibecommerce/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	// Act
	service := sendgrid_client.NewEmailService("test-api-key", "sender@example.com", "Test Sender")

	// Assert
	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// newCapturingServer records the last mail payload and answers with status.
func newCapturingServer(t *testing.T, status int, payload *sendgridV3Payload) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		if err := json.Unmarshal(body, payload); err != nil {
			http.Error(w, "Failed to unmarshal request body", http.StatusBadRequest)
			return
		}

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@vibecommerce.test"
	fromName := "VibeCommerce"

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Text and HTML",
			req: &models.EmailNotificationRequest{
				To:          "ada@example.com",
				ToName:      "Ada",
				Subject:     "Receipt",
				Content:     "Plain text content",
				HTMLContent: "<h1>HTML Content</h1>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "ada@example.com", pers.To[0]["email"])
				assert.Equal(t, "Ada", pers.To[0]["name"])
				assert.Equal(t, "Receipt", pers.Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Text only",
			req: &models.EmailNotificationRequest{
				To:      "ada@example.com",
				Subject: "Receipt",
				Content: "Plain text content",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Content, 1)
				assert.Equal(t, "Plain text content", p.Content[0].Value)
			},
		},
		{
			name:          "Failure - SendGrid API Error (4xx)",
			req:           &models.EmailNotificationRequest{To: "bad@example.com", Subject: "Receipt", Content: "Content"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - SendGrid API Error (5xx)",
			req:           &models.EmailNotificationRequest{To: "ada@example.com", Subject: "Receipt", Content: "Content"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload
			server := newCapturingServer(t, tc.status, &payload)

			service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
			service.GetSendGridClient().Request.BaseURL = server.URL

			// Act
			err := service.Send(t.Context(), tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload
		server := newCapturingServer(t, http.StatusAccepted, &payload)

		service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		// Act
		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "ada@example.com", Subject: "x", Content: "y"})

		// Assert
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "connection refused") || strings.Contains(err.Error(), "dial tcp"))
	})
}

type stubEmailService struct {
	sendgrid_client.EmailService
	sent []*models.EmailNotificationRequest
	err  error
}

func (s *stubEmailService) Send(_ context.Context, req *models.EmailNotificationRequest) error {
	s.sent = append(s.sent, req)
	return s.err
}

func TestReceiptMailer(t *testing.T) {
	receipt := &models.Receipt{
		ID:    "RCPT-1700000000000-deadbeef",
		Name:  "Ada",
		Email: "ada@example.com",
		Total: 300,
		Items: []models.CartLine{
			{ID: "line-1", ProductID: "p-1", ProductSnapshot: models.ProductSnapshot{Name: "Lamp <Pro>", Price: 100}, Qty: 3},
		},
		Timestamp: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Success - Renders receipt", func(t *testing.T) {
		// Arrange
		stub := &stubEmailService{}
		mailer := sendgrid_client.NewReceiptMailer(stub)

		// Act
		err := mailer.SendReceipt(t.Context(), receipt)

		// Assert
		require.NoError(t, err)
		require.Len(t, stub.sent, 1)

		sent := stub.sent[0]
		assert.Equal(t, "ada@example.com", sent.To)
		assert.Equal(t, "Ada", sent.ToName)
		assert.Contains(t, sent.Subject, receipt.ID)
		assert.Contains(t, sent.Content, "3 x Lamp <Pro> @ 100 = 300")
		assert.Contains(t, sent.Content, "Total: 300")
		assert.Contains(t, sent.HTMLContent, "Lamp &lt;Pro&gt;")
		assert.Contains(t, sent.HTMLContent, "2026-10-15 12:00 UTC")
	})

	t.Run("No e-mail address", func(t *testing.T) {
		stub := &stubEmailService{}
		mailer := sendgrid_client.NewReceiptMailer(stub)

		anonymous := *receipt
		anonymous.Email = "  "

		require.NoError(t, mailer.SendReceipt(t.Context(), &anonymous))
		assert.Empty(t, stub.sent)
	})

	t.Run("Failure - Delivery error", func(t *testing.T) {
		stub := &stubEmailService{err: errors.New("status code: 500")}
		mailer := sendgrid_client.NewReceiptMailer(stub)

		err := mailer.SendReceipt(t.Context(), receipt)

		assert.ErrorIs(t, err, stub.err)
	})
}
