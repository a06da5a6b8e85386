package mesos

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/golang/mock/gomock"
	mesosproto "github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/tarnfeld/spark/pkg/mesos/dispatcher"
	"github.com/tarnfeld/spark/pkg/mesos/executorinfo"
	scheduler_mocks "github.com/tarnfeld/spark/pkg/scheduler/mocks"
	"github.com/tarnfeld/spark/pkg/storage"
)

const _frameworkName = "spark"

type HandlerTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	taskScheduler *scheduler_mocks.MockTaskScheduler
	store         *storage.InMemoryStore
	dispatcher    *dispatcher.Dispatcher
	handler       *Handler
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.taskScheduler = scheduler_mocks.NewMockTaskScheduler(s.ctrl)
	s.taskScheduler.EXPECT().CPUsPerTask().Return(1).AnyTimes()
	s.store = storage.NewInMemoryStore()
	s.dispatcher = dispatcher.New(
		dispatcher.Config{MinMemMB: 128},
		s.taskScheduler,
		executorinfo.NewBuilder(executorinfo.Config{Home: "/opt/spark"}),
		tally.NoopScope,
	)
	s.handler = NewHandler(s.dispatcher, s.store, _frameworkName, tally.NoopScope)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestRegisteredPersistsFrameworkID() {
	s.handler.Registered(
		nil,
		&mesosproto.FrameworkID{Value: proto.String("framework-1")},
		&mesosproto.MasterInfo{Hostname: proto.String("master-1")},
	)

	id, err := s.store.GetFrameworkID(context.Background(), _frameworkName)
	s.NoError(err)
	s.Equal("framework-1", id)
}

func (s *HandlerTestSuite) TestResourceOffersEmptyBatch() {
	// No offers means no driver calls; the cycle must still complete.
	s.handler.ResourceOffers(nil, nil)
}

func (s *HandlerTestSuite) TestSlaveLostForgetsWorker() {
	// Seed the descriptor cache through a real cycle, then lose the slave.
	s.taskScheduler.EXPECT().
		ResourceOffers(gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	s.handler.SlaveLost(
		nil, &mesosproto.SlaveID{Value: proto.String("agent-9")})
	s.Equal(0, s.dispatcher.ExecutorCount())
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
