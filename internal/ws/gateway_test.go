package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lukemay/quizroom-go/internal/dependencies/mocks"
	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/projector"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/services/room"
	"github.com/lukemay/quizroom-go/internal/storage/memory"
	"github.com/lukemay/quizroom-go/internal/testutil"
)

type GatewaySuite struct {
	suite.Suite
	server   *httptest.Server
	registry *registry.Service
	conns    []*websocket.Conn
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	logger := testutil.NopLogger()
	store := memory.New()
	s.registry = registry.New(store, logger)
	controller := room.NewController(
		store, s.registry, clockwork.NewFakeClock(), mocks.NewMockRandom(),
		room.Config{QuestionDuration: 30}, logger)
	hubs := NewHubManager(logger)
	broadcaster := NewBroadcaster(hubs, projector.New(), logger)
	gateway := NewGateway(controller, s.registry, hubs, broadcaster, logger)

	s.server = httptest.NewServer(http.HandlerFunc(gateway.ServeWS))
	s.conns = nil
}

func (s *GatewaySuite) TearDownTest() {
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.server.Close()
}

func (s *GatewaySuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.conns = append(s.conns, conn)
	return conn
}

func (s *GatewaySuite) send(conn *websocket.Conn, event model.EventType, payload any) {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteJSON(Envelope{Event: event, Data: data}))
}

// readView reads the next roomUpdate off the connection
func (s *GatewaySuite) readView(conn *websocket.Conn) *model.RoomView {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	var env Envelope
	s.Require().NoError(conn.ReadJSON(&env))
	s.Require().Equal(model.EventRoomUpdate, env.Event)

	var view model.RoomView
	s.Require().NoError(json.Unmarshal(env.Data, &view))
	return &view
}

func (s *GatewaySuite) expectSilence(conn *websocket.Conn) {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond)))
	var env Envelope
	err := conn.ReadJSON(&env)
	s.Require().Error(err, "expected no message, got %s", env.Event)
}

func (s *GatewaySuite) sampleQuestions() []model.Question {
	return []model.Question{
		{Prompt: "Capital of France?", Options: []string{"paris", "lyon"}, Answer: "paris"},
		{Prompt: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
	}
}

func (s *GatewaySuite) TestCreateRoomBroadcastsLobby() {
	host := s.dial()
	s.send(host, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})

	view := s.readView(host)
	s.Equal("ABCD", view.Code)
	s.Equal(model.PhaseLobby, view.Phase)
	s.Equal(-1, view.CurrentQuestion)
	s.Equal(2, view.QuestionCount)
	s.Require().Len(view.Players, 1)
	s.Equal("Alice", view.Players[0].Name)
}

func (s *GatewaySuite) TestJoinRoomBroadcastsToEveryMember() {
	host := s.dial()
	s.send(host, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	s.readView(host)

	player := s.dial()
	s.send(player, model.EventJoinRoom, JoinRoomPayload{Code: "ABCD", Name: "Bob"})

	for _, conn := range []*websocket.Conn{host, player} {
		view := s.readView(conn)
		s.Require().Len(view.Players, 2)
		s.Equal("Bob", view.Players[1].Name)
	}
}

func (s *GatewaySuite) TestFullRound() {
	host := s.dial()
	s.send(host, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	s.readView(host)

	player := s.dial()
	s.send(player, model.EventJoinRoom, JoinRoomPayload{Code: "ABCD", Name: "Bob"})
	s.readView(host)
	s.readView(player)

	s.send(host, model.EventStartGame, StartGamePayload{RoomID: "ABCD"})
	started := s.readView(player)
	s.Equal(model.PhaseQuestionActive, started.Phase)
	s.Equal(0, started.CurrentQuestion)
	s.Equal(30, started.TimeRemaining)
	s.readView(host)

	s.send(player, model.EventLockAnswer, LockAnswerPayload{Answer: "paris", RoomID: "ABCD"})
	answered := s.readView(host)
	s.Require().Len(answered.Players, 2)
	s.False(answered.Players[0].HasAnswered)
	s.True(answered.Players[1].HasAnswered)
	s.readView(player)
}

func (s *GatewaySuite) TestStartGameByNonHostIsDropped() {
	host := s.dial()
	s.send(host, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	s.readView(host)

	player := s.dial()
	s.send(player, model.EventJoinRoom, JoinRoomPayload{Code: "ABCD", Name: "Bob"})
	s.readView(host)
	s.readView(player)

	s.send(player, model.EventStartGame, StartGamePayload{RoomID: "ABCD"})
	s.expectSilence(player)
}

func (s *GatewaySuite) TestLockAnswerWithEmptyAnswerIsIgnored() {
	host := s.dial()
	s.send(host, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	s.readView(host)
	s.send(host, model.EventStartGame, StartGamePayload{RoomID: "ABCD"})
	s.readView(host)

	s.send(host, model.EventLockAnswer, LockAnswerPayload{Answer: "", RoomID: "ABCD"})
	s.expectSilence(host)
}

func (s *GatewaySuite) TestJoinUnknownRoomIsDropped() {
	conn := s.dial()
	s.send(conn, model.EventJoinRoom, JoinRoomPayload{Code: "NOPE", Name: "Bob"})
	s.expectSilence(conn)
}

func (s *GatewaySuite) TestMalformedMessageKeepsConnectionAlive() {
	conn := s.dial()
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	// Connection still works afterwards
	s.send(conn, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	view := s.readView(conn)
	s.Equal("ABCD", view.Code)
}

func (s *GatewaySuite) TestDisconnectRemovesPlayerFromRegistry() {
	conn := s.dial()
	s.send(conn, model.EventCreateRoom, CreateRoomPayload{
		Code: "ABCD", Name: "Alice", Questions: s.sampleQuestions(),
	})
	view := s.readView(conn)
	hostID := model.PlayerID(view.Players[0].ID)

	s.Require().NoError(conn.Close())

	require.Eventually(s.T(), func() bool {
		_, err := s.registry.Find(context.Background(), hostID)
		return err != nil
	}, 2*time.Second, 20*time.Millisecond, "player still registered after disconnect")
}
