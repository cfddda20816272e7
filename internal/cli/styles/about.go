package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/dockyard/internal/domain/build"
)

// AboutRenderer renders version and build information.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render renders build info, the repository URL and contributors.
func (r *AboutRenderer) Render(info build.Info) string {
	version := info.Version
	if version == "" {
		version = "dev"
	}

	var sb strings.Builder
	sb.WriteString(r.theme.Title.Render("dockyard") + "\n")
	fmt.Fprintf(&sb, "  %s %s %s\n", IconVersion, r.theme.Subtle.Render("version"), r.theme.Highlight.Render(version))
	if info.Commit != "" {
		fmt.Fprintf(&sb, "  %s %s %s\n", IconInfo, r.theme.Subtle.Render("commit "), info.Commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(&sb, "  %s %s %s\n", IconInfo, r.theme.Subtle.Render("built  "), info.BuildDate)
	}
	if info.GoVersion != "" {
		fmt.Fprintf(&sb, "  %s %s %s\n", IconGo, r.theme.Subtle.Render("go     "), info.GoVersion)
	}
	fmt.Fprintf(&sb, "\n  %s\n", r.theme.Normal.Render(build.RepoURL()))
	fmt.Fprintf(&sb, "  %s %s\n", r.theme.Subtle.Render("by"), strings.Join(build.Contributors(), ", "))
	return sb.String()
}
