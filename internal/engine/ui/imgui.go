// Package ui wraps the ImGui SDL backend the viewer runs on.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/logger"
)

// FontSize is the UI font size in pixels.
const FontSize = 16.0

// fontPaths are tried in order; the first that exists is loaded.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",        // macOS
	"/Library/Fonts/Arial Unicode.ttf",                    // macOS (symlink)
	"C:\\Windows\\Fonts\\segoeui.ttf",                     // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",     // Linux
	"/usr/share/fonts/TTF/DejaVuSans.ttf",                 // Linux alt
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf", // Linux alt
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",          // Linux alt
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
	log     *zap.Logger
}

// NewBackend creates the window and GL context.
func NewBackend(title string, width, height int32, background [3]float32, log *zap.Logger) (*Backend, error) {
	log = logger.OrNop(log)
	b := &Backend{
		width:  width,
		height: height,
		log:    log,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame builds the atlas.
	b.backend.SetAfterCreateContextHook(b.loadFont)

	b.backend.SetBgColor(imgui.NewVec4(background[0], background[1], background[2], 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// loadFont loads the first system font found, keeping ImGui's built-in
// font otherwise.
func (b *Backend) loadFont() {
	fontPath := FindFont(fontPaths)
	if fontPath == "" {
		b.log.Debug("no system font found, using default")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	if font := imgui.CurrentIO().Fonts().AddFontFromFileTTFV(fontPath, FontSize, fontCfg, nil); font == nil {
		b.log.Warn("failed to load font", zap.String("path", fontPath))
		return
	}
	b.log.Debug("loaded font", zap.String("path", fontPath))
}

// FindFont returns the first path that exists, or "".
func FindFont(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetShouldClose asks the loop to exit after the current frame.
func (b *Backend) SetShouldClose() {
	b.backend.SetShouldClose(true)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// Texture returns an ImGui texture reference for a GL texture.
func Texture(id uint32) imgui.TextureRef {
	return *imgui.NewTextureRefTextureID(imgui.TextureID(id))
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// Clipboard copies text through ImGui, which hands it to SDL.
type Clipboard struct{}

// SetText implements export.Clipboard.
func (Clipboard) SetText(text string) error {
	imgui.SetClipboardText(text)
	return nil
}
