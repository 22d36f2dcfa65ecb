// Package group manages the named containers items are written into.
package group

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/boardsync/internal/transport"
)

// ErrGroupCreate indicates the create mutation succeeded without
// returning a group id.
var ErrGroupCreate = errors.New("group created but no id returned")

// API issues GraphQL documents against the remote platform.
type API interface {
	Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error)
}

// Service administers groups on a board.
type Service struct {
	api    API
	logger *slog.Logger
}

// NewService creates a group Service.
func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Create creates a named group and returns its id.
func (s *Service) Create(ctx context.Context, boardID, name string) (string, error) {
	data, err := s.api.Send(ctx, transport.MutationCreateGroup, map[string]any{
		"boardId":   boardID,
		"groupName": name,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		CreateGroup struct {
			ID string `json:"id"`
		} `json:"create_group"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding create_group response: %w", err)
	}
	if resp.CreateGroup.ID == "" {
		return "", fmt.Errorf("%w: board %s group %q", ErrGroupCreate, boardID, name)
	}
	if s.logger != nil {
		s.logger.Info("group created", "board", boardID, "group", name, "id", resp.CreateGroup.ID)
	}
	return resp.CreateGroup.ID, nil
}

// Find looks up a group id by exact case-sensitive title. Not finding
// one is an expected outcome, not an error.
func (s *Service) Find(ctx context.Context, boardID, name string) (string, bool, error) {
	data, err := s.api.Send(ctx, transport.QueryBoardGroups, map[string]any{"boardId": boardID})
	if err != nil {
		return "", false, err
	}

	var resp struct {
		Boards []struct {
			Groups []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"groups"`
		} `json:"boards"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("decoding groups response: %w", err)
	}
	if len(resp.Boards) == 0 {
		return "", false, nil
	}
	for _, g := range resp.Boards[0].Groups {
		if g.Title == name {
			return g.ID, true, nil
		}
	}
	if s.logger != nil {
		s.logger.Warn("group not found", "board", boardID, "group", name)
	}
	return "", false, nil
}

// Delete removes a group. It returns true only when the API echoes back
// the same group id; a mismatch is a non-fatal false.
func (s *Service) Delete(ctx context.Context, boardID, groupID string) (bool, error) {
	data, err := s.api.Send(ctx, transport.MutationDeleteGroup, map[string]any{
		"boardId": boardID,
		"groupId": groupID,
	})
	if err != nil {
		return false, err
	}

	var resp struct {
		DeleteGroup struct {
			ID string `json:"id"`
		} `json:"delete_group"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("decoding delete_group response: %w", err)
	}
	if resp.DeleteGroup.ID != groupID {
		if s.logger != nil {
			s.logger.Warn("delete not confirmed", "board", boardID, "group", groupID, "echoed", resp.DeleteGroup.ID)
		}
		return false, nil
	}
	return true, nil
}
