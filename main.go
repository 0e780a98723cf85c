package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emojiart/background"
	"emojiart/emojiart"
	"emojiart/interaction"
	"emojiart/logger"
	"emojiart/palette"
	"emojiart/platform"
	"emojiart/render"
	"emojiart/undo"
)

func main() {
	config := loadConfig()
	closeLog := setupLogging(config)
	defer closeLog()

	var p *tea.Program
	post := func(fn func()) { p.Send(applyMsg(fn)) }

	m := initialModel(config, post)
	if len(os.Args) > 1 {
		m.startupPath = os.Args[1]
	}

	p = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging sends logs to a file since the terminal belongs to the UI.
func setupLogging(config *Config) func() {
	if config.LogFile == "" {
		return func() {}
	}
	os.MkdirAll(filepath.Dir(config.LogFile), 0755)
	file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return func() {}
	}
	logger.Init(file, config.LogLevel, true)
	return func() { file.Close() }
}

func initialModel(config *Config, post func(func())) model {
	loader := background.NewLoader(
		background.WithDispatcher(post),
		background.WithTimeout(config.FetchTimeout),
	)
	history := undo.New(undo.DefaultLimit)
	doc := emojiart.NewDocument(emojiart.NewModel(), emojiart.WithResolver(loader))
	state := interaction.New(doc,
		interaction.WithRecorder(history),
		interaction.WithBackdrop(loader),
		interaction.WithDefaultEmojiSize(config.DefaultEmojiSize),
	)

	raster, err := render.LoadRasterizer(config.FontFile)
	if err != nil {
		logger.Get().Warn().Err(err).Str("font", config.FontFile).Msg("falling back to the built-in font")
		raster, _ = render.NewRasterizer(nil)
	}

	m := model{
		doc:        doc,
		state:      state,
		loader:     loader,
		history:    history,
		palettes:   openPalettes(config),
		raster:     raster,
		pasteboard: platform.NewSystemPasteboard(),
		picker:     platform.FilePicker{Dir: config.ImportDirectory},
		config:     config,
	}
	m.saved = doc.Snapshot()
	return m
}

func openPalettes(config *Config) *palette.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log := logger.With("main")

	var kv palette.KV
	switch config.PaletteBackend {
	case "redis":
		client, err := palette.DialRedis(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, palettes kept in memory")
			kv = palette.NewMemoryKV()
		} else {
			kv = palette.NewRedisKV(client)
		}
	case "memory":
		kv = palette.NewMemoryKV()
	default:
		kv = palette.FileKV{Dir: config.PaletteDirectory}
	}
	store := palette.NewStore(ctx, config.PaletteStore, kv)
	log.Info().Str("store", store.Name()).Str("backend", config.PaletteBackend).Int("palettes", store.Len()).Msg("palettes loaded")
	return store
}

// Init opens the document named on the command line. Opening can start a
// background fetch that posts back through the program, so it waits until
// the program exists.
func (m model) Init() tea.Cmd {
	if m.startupPath == "" {
		return nil
	}
	path := m.startupPath
	return func() tea.Msg { return openMsg(path) }
}
