package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/storage"
)

// Service maintains the set of known connected players keyed by
// connection identity
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player registry service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// Upsert registers a player for the given connection identity. If the
// identity is already known the existing player is returned unchanged;
// name and image are not updated on repeat calls.
func (s *Service) Upsert(ctx context.Context, id model.PlayerID, name, imageURL string) (*model.Player, error) {
	existing, err := s.storage.GetPlayer(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		ID:       id,
		Name:     name,
		ImageURL: imageURL,
	}
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(id)),
		slog.String("name", name))

	return player, nil
}

// Find returns the player for the given connection identity.
// model.ErrPlayerNotFound is a normal outcome for stray events from
// unregistered connections and must not be treated as fatal by callers.
func (s *Service) Find(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns every known player
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Remove deletes a player from the registry on disconnect
func (s *Service) Remove(ctx context.Context, id model.PlayerID) error {
	return s.storage.DeletePlayer(ctx, id)
}
