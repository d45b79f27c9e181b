package main

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-g-everett/cubedance/dance"
	"github.com/matt-g-everett/cubedance/view"
	"gopkg.in/yaml.v2"
)

type app struct {
	Config     dance.Config
	Scene      *dance.Scene
	Zoom       *dance.DampedZoom
	Controller *dance.Controller
}

func newApp() *app {
	a := new(app)
	a.Config = dance.DefaultConfig()
	return a
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, using defaults", configPath)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&a.Config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (a *app) build() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	a.Scene = dance.NewScene(a.Config.Scene)
	a.Zoom = dance.NewDampedZoom(a.Config.Display.Damping, a.Config.Display.ZoomStep)

	var err error
	a.Controller, err = dance.NewController(a.Scene, a.Config, 0, a.Zoom)
	return err
}

func (a *app) run() error {
	if err := a.build(); err != nil {
		return err
	}
	start := time.Now()

	p := tea.NewProgram(view.NewModel(a.Controller, a.Zoom, a.Config, start), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	log.Printf("Config: %+v", a.Config)

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if a.Config.Display.LogFile != "" {
		f, err := tea.LogToFile(a.Config.Display.LogFile, "cubedance")
		if err != nil {
			log.Fatalf("Opening log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := a.run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Running: %v", err)
	}
}
