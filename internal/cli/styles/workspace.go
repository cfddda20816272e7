package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// WorkspaceRenderer renders stored workspaces.
type WorkspaceRenderer struct {
	theme *Theme
}

// NewWorkspaceRenderer creates a new workspace renderer with the given theme.
func NewWorkspaceRenderer(theme *Theme) *WorkspaceRenderer {
	return &WorkspaceRenderer{theme: theme}
}

// VerifyResult is the outcome of decoding one stored workspace.
type VerifyResult struct {
	ID  entity.WorkspaceID
	Err error
}

// RenderList renders workspaces as a table.
func (r *WorkspaceRenderer) RenderList(list []*entity.DockWorkspace) string {
	if len(list) == 0 {
		return r.theme.Subtle.Render("No saved workspaces.")
	}

	rows := make([][]string, 0, len(list))
	for _, ws := range list {
		dirty := ""
		if ws.IsDirty {
			dirty = "yes"
		}
		rows = append(rows, []string{string(ws.ID), ws.Name, ws.Format, formatSavedAt(ws.SavedAt), dirty})
	}

	header := r.theme.TableHeader
	cell := r.theme.TableCell
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers("ID", "NAME", "FORMAT", "SAVED", "DIRTY").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.String()
}

// RenderHeader renders the summary line above a workspace tree.
func (r *WorkspaceRenderer) RenderHeader(ws *entity.DockWorkspace) string {
	parts := []string{r.theme.Highlight.Render(ws.DisplayName())}
	if ws.Format != "" {
		parts = append(parts, r.theme.BadgeMuted.Render(ws.Format))
	}
	if !ws.SavedAt.IsZero() {
		parts = append(parts, r.theme.Subtle.Render("saved "+formatSavedAt(ws.SavedAt)))
	}
	return strings.Join(parts, " ")
}

// RenderVerify renders one line per verified workspace.
func (r *WorkspaceRenderer) RenderVerify(results []VerifyResult) string {
	if len(results) == 0 {
		return r.theme.Subtle.Render("No saved workspaces.")
	}
	var sb strings.Builder
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(&sb, "  %s %s %s\n",
				r.theme.ErrorStyle.Render(IconX),
				string(res.ID),
				r.theme.Subtle.Render(res.Err.Error()))
			continue
		}
		fmt.Fprintf(&sb, "  %s %s\n", r.theme.SuccessStyle.Render(IconCheck), string(res.ID))
	}
	return sb.String()
}

// RenderSaved renders the confirmation after a workspace write.
func (r *WorkspaceRenderer) RenderSaved(ws *entity.DockWorkspace) string {
	return fmt.Sprintf("%s Saved workspace %s (%s)",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(ws.ID)),
		ws.Format)
}

// RenderDeleted renders the confirmation after a workspace delete.
func (r *WorkspaceRenderer) RenderDeleted(id entity.WorkspaceID) string {
	return fmt.Sprintf("%s Deleted workspace %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(id)))
}

func formatSavedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
