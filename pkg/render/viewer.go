package render

import (
	"context"
	"os/exec"
	"runtime"
)

// Viewer shows a saved image to the user.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// SystemViewer hands the file to the desktop's default image viewer.
type SystemViewer struct{}

func (SystemViewer) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Start()
}
