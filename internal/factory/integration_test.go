package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lukemay/quizroom-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete quiz flow from room creation to the end of the game
func (s *IntegrationSuite) TestCompleteQuizFlow() {
	questions := []model.Question{
		{Prompt: "Capital of France?", Options: []string{"paris", "lyon"}, Answer: "paris"},
		{Prompt: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
	}

	// Step 1: Host creates a room with a generated code
	s.app.MockRandom.QueueCode("ROOM1")
	created, err := s.app.RoomController.CreateRoom(s.ctx, "conn-host", "Host", "", "", questions)
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ROOM1"), created.Code)
	s.Equal(model.PhaseLobby, created.Phase)

	// Step 2: Two players join
	_, err = s.app.RoomController.JoinRoom(s.ctx, "ROOM1", "conn-p2", "Player Two", "")
	s.Require().NoError(err)
	joined, err := s.app.RoomController.JoinRoom(s.ctx, "ROOM1", "conn-p3", "Player Three", "")
	s.Require().NoError(err)
	s.Len(joined.Players, 3)

	// Step 3: Host starts the game
	started, err := s.app.RoomController.StartGame(s.ctx, "ROOM1", "conn-host")
	s.Require().NoError(err)
	s.Equal(model.PhaseQuestionActive, started.Phase)
	s.Equal(0, started.CurrentQuestion)

	// Step 4: Players answer; one changes their mind
	_, err = s.app.RoomController.LockAnswer(s.ctx, "ROOM1", "conn-p2", "lyon")
	s.Require().NoError(err)
	answered, err := s.app.RoomController.LockAnswer(s.ctx, "ROOM1", "conn-p2", "paris")
	s.Require().NoError(err)
	s.Equal("paris", *answered.GetPlayer("conn-p2").CurrentAnswer)

	// Step 5: The countdown runs the question out
	for i := 0; i < started.TimeRemaining; i++ {
		s.app.RoomController.Tick(s.ctx)
	}
	ended, err := s.app.RoomController.GetRoom(s.ctx, "ROOM1")
	s.Require().NoError(err)
	s.Equal(model.PhaseQuestionEnded, ended.Phase)

	// Answers are frozen once the question ends
	_, err = s.app.RoomController.LockAnswer(s.ctx, "ROOM1", "conn-p3", "late")
	s.ErrorIs(err, model.ErrRoundNotActive)

	// Step 6: Host advances to the second question; answer slate is clean
	next, err := s.app.RoomController.NextQuestion(s.ctx, "ROOM1", "conn-host")
	s.Require().NoError(err)
	s.Equal(1, next.CurrentQuestion)
	s.Equal(model.PhaseQuestionActive, next.Phase)
	for _, p := range next.Players {
		s.Nil(p.CurrentAnswer)
	}

	// Step 7: The last question expiring ends the game
	for i := 0; i < next.TimeRemaining; i++ {
		s.app.RoomController.Tick(s.ctx)
	}
	final, err := s.app.RoomController.GetRoom(s.ctx, "ROOM1")
	s.Require().NoError(err)
	s.Equal(model.PhaseGameEnded, final.Phase)

	// The finished game cannot be restarted or advanced
	_, err = s.app.RoomController.StartGame(s.ctx, "ROOM1", "conn-host")
	s.ErrorIs(err, model.ErrGameFinished)
	_, err = s.app.RoomController.NextQuestion(s.ctx, "ROOM1", "conn-host")
	s.ErrorIs(err, model.ErrGameFinished)
}

// Test: a broadcast view built from live state never exposes answers
func (s *IntegrationSuite) TestProjectionFromLiveState() {
	questions := []model.Question{{Prompt: "q", Options: []string{"a", "b"}, Answer: "a"}}

	_, err := s.app.RoomController.CreateRoom(s.ctx, "conn-host", "Host", "", "QUIZ", questions)
	s.Require().NoError(err)
	_, err = s.app.RoomController.StartGame(s.ctx, "QUIZ", "conn-host")
	s.Require().NoError(err)
	updated, err := s.app.RoomController.LockAnswer(s.ctx, "QUIZ", "conn-host", "a")
	s.Require().NoError(err)

	view := s.app.Projector.Project(updated)
	s.Require().Len(view.Players, 1)
	s.True(view.Players[0].HasAnswered)
}

// Test: two rooms run their countdowns independently
func (s *IntegrationSuite) TestRoomsTickIndependently() {
	questions := []model.Question{{Prompt: "q", Options: []string{"a"}}}

	_, err := s.app.RoomController.CreateRoom(s.ctx, "conn-a", "A", "", "AAAA", questions)
	s.Require().NoError(err)
	_, err = s.app.RoomController.CreateRoom(s.ctx, "conn-b", "B", "", "BBBB", questions)
	s.Require().NoError(err)

	_, err = s.app.RoomController.StartGame(s.ctx, "AAAA", "conn-a")
	s.Require().NoError(err)

	changed := s.app.RoomController.Tick(s.ctx)
	s.Require().Len(changed, 1)
	s.Equal(model.RoomCode("AAAA"), changed[0].Code)

	idle, err := s.app.RoomController.GetRoom(s.ctx, "BBBB")
	s.Require().NoError(err)
	s.Equal(model.PhaseLobby, idle.Phase)
	s.Equal(0, idle.TimeRemaining)
}
