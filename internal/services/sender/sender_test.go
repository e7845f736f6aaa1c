package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenbowl/salad-storefront/internal/lib/smtp"
	"github.com/greenbowl/salad-storefront/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func orderCreatedBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.OrderCreatedEvent{
		OrderUID:     "order-uid-1",
		UserEmail:    "anna@example.com",
		UserName:     "Anna Smith",
		Total:        decimal.NewFromFloat(31.00),
		DeliveryDate: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestSenderService_SendOrderConfirmation(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)

	transport.On("GetSMTPUser").Return("orders@greenbowl.example")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "orders@greenbowl.example").Return(nil).Once()
	client.On("Rcpt", "anna@example.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	writer.On("Write", mock.MatchedBy(func(p []byte) bool {
		msg := string(p)
		return strings.Contains(msg, "To: anna@example.com") &&
			strings.Contains(msg, "order-uid-1") &&
			strings.Contains(msg, "31.00") &&
			strings.Contains(msg, "01.09.2026")
	})).Return(0, nil).Once()
	writer.On("Close").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := NewSenderService(transport, newNoopLogger())
	err := svc.SendOrderConfirmation(orderCreatedBody(t))

	require.NoError(t, err)
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestSenderService_SendOrderConfirmation_BadPayload(t *testing.T) {
	transport := new(MockTransport)

	svc := NewSenderService(transport, newNoopLogger())
	err := svc.SendOrderConfirmation([]byte("{not json"))

	require.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSenderService_SendOrderConfirmation_ConnectFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("orders@greenbowl.example")
	transport.On("Connect").Return(nil, errors.New("connection refused")).Once()

	svc := NewSenderService(transport, newNoopLogger())
	err := svc.SendOrderConfirmation(orderCreatedBody(t))

	require.Error(t, err)
}
