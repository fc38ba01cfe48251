package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "repogroom"

	// AppExeName is the executable name (without extension)
	AppExeName = "repogroom"

	// AppExeNameWindows is the executable name on Windows
	AppExeNameWindows = "repogroom.exe"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the repogroom configuration directory path.
// Linux: ~/.config/repogroom (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\repogroom (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)

	if err := os.MkdirAll(appDir, 0o755); err != nil {
		errDir = fmt.Errorf("failed to create config directory: %w", err)
	}
}
