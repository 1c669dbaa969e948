package ports

import (
	"context"

	"github.com/aretw0/algoscope/pkg/domain"
)

// WorkspaceStore defines the interface for persisting editor workspaces.
type WorkspaceStore interface {
	// Save persists the workspace under ws.ID.
	Save(ctx context.Context, ws *domain.Workspace) error

	// Load retrieves a workspace.
	// Returns domain.ErrWorkspaceNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Workspace, error)

	// Delete removes a workspace. Deleting a missing workspace is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored workspaces.
	List(ctx context.Context) ([]string, error)
}
