package logger

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger records log calls through testify's mock.Mock.
//
// Each level method is called as m.Called(msg, keysAndValues), so
// expectations are written as On("Warn", "message", mock.Anything).
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// AllowAll registers optional expectations for every level, returning the
// mock itself from With. Expectations added before AllowAll take precedence.
func (m *MockLogger) AllowAll() *MockLogger {
	for _, method := range []string{"Debug", "Info", "Warn", "Error", "Fatal"} {
		m.On(method, mock.Anything, mock.Anything).Maybe()
	}
	m.On("With", mock.Anything).Return(m).Maybe()
	m.On("SetLevel", mock.Anything).Maybe()
	m.On("Level").Return(DebugLevel).Maybe()

	return m
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Fatal(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) SetLevel(level LogLevel) {
	m.Called(level)
}

func (m *MockLogger) Level() LogLevel {
	args := m.Called()
	return args.Get(0).(LogLevel)
}

// With is recorded with the key-values packed into a single argument.
func (m *MockLogger) With(keyValues ...any) Logger {
	args := m.Called(keyValues)
	return args.Get(0).(Logger)
}
