package pcbuilds

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrNoWorkspace is returned when a workspace-bound component renders outside a provider.
var ErrNoWorkspace = errors.New("pcbuilds: no workspace in context")

// Workspace is the per-request editing state of the PC-builds page.
type Workspace struct {
	SelectedID string
	Status     Status
	Search     string
}

// WorkspaceFromValues reads the workspace from query or form values.
func WorkspaceFromValues(values url.Values) Workspace {
	ws := Workspace{
		SelectedID: strings.TrimSpace(values.Get("selected")),
		Search:     strings.TrimSpace(values.Get("q")),
	}
	if status, ok := ParseStatus(values.Get("status")); ok {
		ws.Status = status
	}
	return ws
}

// Values encodes the workspace back into query parameters. Empty fields are omitted.
func (w Workspace) Values() url.Values {
	values := url.Values{}
	if w.SelectedID != "" {
		values.Set("selected", w.SelectedID)
	}
	if w.Status != "" {
		values.Set("status", string(w.Status))
	}
	if w.Search != "" {
		values.Set("q", w.Search)
	}
	return values
}

// Select returns a copy of the workspace focused on id.
func (w Workspace) Select(id string) Workspace {
	w.SelectedID = id
	return w
}

type workspaceKey struct{}

// WithWorkspace attaches ws to ctx.
func WithWorkspace(ctx context.Context, ws Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey{}, ws)
}

// WorkspaceFromContext returns the workspace attached by WithWorkspace.
func WorkspaceFromContext(ctx context.Context) (Workspace, bool) {
	if ctx == nil {
		return Workspace{}, false
	}
	ws, ok := ctx.Value(workspaceKey{}).(Workspace)
	return ws, ok
}
