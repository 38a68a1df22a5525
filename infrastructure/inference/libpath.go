package inference

import (
	"path/filepath"
	"runtime"
)

// SharedLibraryPath resolves the ONNX Runtime shared library: the configured
// path when set, otherwise the platform default under third_party/.
func SharedLibraryPath(configured string) string {
	if configured != "" {
		return configured
	}
	return defaultLibraryPath(runtime.GOOS, runtime.GOARCH)
}

func defaultLibraryPath(goos, goarch string) string {
	dir := "third_party"
	switch goos {
	case "windows":
		return filepath.Join(dir, "onnxruntime.dll")
	case "darwin":
		return filepath.Join(dir, "libonnxruntime.dylib")
	default:
		if goarch == "arm64" {
			return filepath.Join(dir, "onnxruntime_arm64.so")
		}
		return filepath.Join(dir, "onnxruntime.so")
	}
}
