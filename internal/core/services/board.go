package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure BoardService implements the interface.
var _ driving.BoardService = (*BoardService)(nil)

// BoardService serves the kanban board.
type BoardService struct {
	boards driven.BoardStore
}

// NewBoardService creates a new board service.
func NewBoardService(boards driven.BoardStore) *BoardService {
	return &BoardService{boards: boards}
}

// GetBoard returns the first board. When none exists the default
// "Mission Control" board with its four columns is created.
func (s *BoardService) GetBoard(ctx context.Context) (*domain.Board, error) {
	board, err := s.boards.FirstBoard(ctx)
	if err == nil {
		return board, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get board: %w", err)
	}

	logger.Info("No board found, creating %q", domain.DefaultBoardName)
	board = &domain.Board{Name: domain.DefaultBoardName}
	for i, tmpl := range domain.DefaultColumns() {
		board.Columns = append(board.Columns, domain.Column{
			Name:     tmpl.Name,
			Position: i,
			Color:    tmpl.Color,
			Projects: []domain.Project{},
		})
	}
	if err := s.boards.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("create default board: %w", err)
	}
	return board, nil
}

// ListColumns returns every column with nested projects and tasks.
func (s *BoardService) ListColumns(ctx context.Context) ([]domain.Column, error) {
	columns, err := s.boards.ListColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return columns, nil
}
