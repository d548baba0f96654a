package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lukemay/quizroom-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "conn-1", Name: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "conn-missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "conn-1", Name: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "conn-1"))

	_, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerIsIdempotent() {
	s.NoError(s.storage.DeletePlayer(s.ctx, "conn-never-existed"))
}

func (s *StorageSuite) TestListPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "conn-1", Name: "Alice"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "conn-2", Name: "Bob"}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{Code: "ABCD", Phase: model.PhaseLobby, CurrentQuestion: -1}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ABCD"), got.Code)
	s.Equal(-1, got.CurrentQuestion)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestSaveRoomOverwrites() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD", Phase: model.PhaseLobby}))
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD", Phase: model.PhaseQuestionActive}))

	got, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.PhaseQuestionActive, got.Phase)

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 1)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD"}))

	exists, err = s.storage.RoomExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetRoomReturnsIndependentCopy() {
	answer := "paris"
	room := &model.Room{
		Code:  "ABCD",
		Phase: model.PhaseQuestionActive,
		Players: []model.Player{
			{ID: "conn-1", Name: "Alice", CurrentAnswer: &answer},
		},
		Questions: []model.Question{
			{Prompt: "q", Options: []string{"a", "b"}},
		},
		TimeRemaining: 10,
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	// Mutating what the caller saved or fetched must not touch the store
	room.TimeRemaining = 0
	room.Players[0].CurrentAnswer = nil

	first, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	first.Phase = model.PhaseGameEnded
	first.Players[0].Name = "Mallory"
	*first.Players[0].CurrentAnswer = "lyon"
	first.Questions[0].Options[0] = "z"

	second, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.PhaseQuestionActive, second.Phase)
	s.Equal(10, second.TimeRemaining)
	s.Equal("Alice", second.Players[0].Name)
	s.Require().NotNil(second.Players[0].CurrentAnswer)
	s.Equal("paris", *second.Players[0].CurrentAnswer)
	s.Equal("a", second.Questions[0].Options[0])
}

func (s *StorageSuite) TestGetPlayerReturnsIndependentCopy() {
	answer := "42"
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID: "conn-1", Name: "Alice", CurrentAnswer: &answer,
	}))

	first, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	first.Name = "Mallory"
	*first.CurrentAnswer = "0"

	second, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal("Alice", second.Name)
	s.Equal("42", *second.CurrentAnswer)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD"}))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABCD"))

	_, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
