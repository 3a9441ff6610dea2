package media

import (
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true,
}

// Ext returns the lower-cased extension of name, including the dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func IsImage(name string) bool { return imageExts[Ext(name)] }

func IsVideo(name string) bool { return videoExts[Ext(name)] }

// IsMedia reports whether name has one of the servable image or video extensions.
func IsMedia(name string) bool { return IsImage(name) || IsVideo(name) }
