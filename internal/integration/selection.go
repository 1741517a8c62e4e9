package integration

import (
	"errors"

	"github.com/agenthub-io/agenthub/internal/api"
)

// ErrBoardMismatch is returned when a board is selected whose parent project
// differs from the currently selected project.
var ErrBoardMismatch = errors.New("board does not belong to the selected project")

// ErrNoProject is returned when a board is selected before any project.
var ErrNoProject = errors.New("no project selected")

// ProjectSelection tracks the active project and board. A board always
// belongs to the selected project; changing the project clears the board.
type ProjectSelection struct {
	project *api.Project
	board   *api.Board
}

// Project returns the selected project, if any.
func (s *ProjectSelection) Project() (api.Project, bool) {
	if s.project == nil {
		return api.Project{}, false
	}
	return *s.project, true
}

// Board returns the selected board, if any.
func (s *ProjectSelection) Board() (api.Board, bool) {
	if s.board == nil {
		return api.Board{}, false
	}
	return *s.board, true
}

// SelectProject sets the active project. Selecting a different project
// always clears the board; re-selecting the same project keeps it.
func (s *ProjectSelection) SelectProject(p api.Project) {
	if s.project != nil && s.project.Key == p.Key {
		s.project = &p
		return
	}
	s.project = &p
	s.board = nil
}

// SelectBoard sets the active board. The board must belong to the selected
// project; a mismatch is rejected and never enters the state.
func (s *ProjectSelection) SelectBoard(b api.Board) error {
	if s.project == nil {
		return ErrNoProject
	}
	if b.ProjectKey != s.project.Key {
		return ErrBoardMismatch
	}
	s.board = &b
	return nil
}

// Clear resets both project and board.
func (s *ProjectSelection) Clear() {
	s.project = nil
	s.board = nil
}

// Complete reports whether both a project and a board are selected.
func (s *ProjectSelection) Complete() bool {
	return s.project != nil && s.board != nil
}
