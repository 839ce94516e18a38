package render

import (
	"os/exec"
	"path/filepath"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
)

// Common Chrome/Chromium binary names across different systems
var chromeBinaryNames = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
	// macOS
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	// Linux
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
	"/headless-shell/headless-shell",
	// Windows
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// FindChromePath returns the first Chrome/Chromium binary found on PATH or
// at a well-known install location, or "" if there is none.
func FindChromePath() string {
	for _, name := range chromeBinaryNames {
		if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
			if path, err := exec.LookPath(name); err == nil {
				logger.Debug("found Chrome binary", "path", path)
				return path
			}
			continue
		}
		if path, err := exec.LookPath(name); err == nil {
			logger.Debug("found Chrome binary", "name", name, "path", path)
			return path
		}
	}
	logger.Warn("no Chrome binary found; page analysis will fail to launch a browser")
	return ""
}
