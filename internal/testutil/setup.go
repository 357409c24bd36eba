package testutil

import (
	"github.com/molnpaket/checkout/internal/config"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides the shared config, logger and fakes every
// service suite needs.
type BaseServiceTestSuite struct {
	suite.Suite
	cfg     *config.Configuration
	logger  *logger.Logger
	gateway *InMemoryPaymentGateway
	mailer  *RecordingMailer
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)
	s.logger = log

	s.gateway = NewInMemoryPaymentGateway()
	s.mailer = NewRecordingMailer()
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.gateway.Clear()
	s.mailer.Clear()
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetGateway() *InMemoryPaymentGateway {
	return s.gateway
}

func (s *BaseServiceTestSuite) GetMailer() *RecordingMailer {
	return s.mailer
}
