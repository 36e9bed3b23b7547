package app

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/ratforge/ratforge/internal/config"
	"github.com/ratforge/ratforge/internal/debug"
	"github.com/ratforge/ratforge/internal/exercise"
	"github.com/ratforge/ratforge/internal/store"
	"github.com/ratforge/ratforge/internal/ui"
)

type Orchestrator struct {
	window  *app.Window
	config  *config.Manager
	store   *store.DB
	storeOK bool
	ui      *ui.Renderer
	session *session
	debug   bool
}

func NewOrchestrator(debugMode bool) *Orchestrator {
	return &Orchestrator{
		window: new(app.Window),
		config: config.NewManager(),
		store:  store.NewDB(),
		ui:     ui.NewRenderer(),
		debug:  debugMode,
	}
}

func (o *Orchestrator) Run() error {
	if o.debug || debug.Enabled {
		log.Printf("Starting RatForge in DEBUG mode, categories %v", debug.ListEnabled())
	}

	if err := o.config.Load(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}
	cfg := o.config.Get()
	o.ui.DarkMode = o.config.IsDarkMode()
	o.ui.SetHotkeys(o.config.GetHotkeys())
	o.ui.Surface.DoubleClick = o.config.DoubleClickWindow()

	o.window.Option(
		app.Title("RatForge - "+exercise.Title),
		app.Size(unit.Dp(cfg.UI.WindowWidth), unit.Dp(cfg.UI.WindowHeight)),
	)

	// Init DB
	dbPath := o.config.DBPath()
	if err := o.store.Open(dbPath); err != nil {
		log.Printf("Failed to open DB: %v", err)
		o.ui.ShowError("Progress will not be saved")
	} else {
		o.storeOK = true
		debug.Log(debug.APP, "attempt log at %s", dbPath)
		go o.store.Start()
		go o.processEvents()
	}

	o.newExercise()

	// Event loop
	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			o.session.close()
			if o.storeOK {
				// Let the worker write what is queued before the database closes
				o.store.Shutdown()
			}
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			o.syncState()
			evt := o.ui.Layout(gtx, &o.session.state)
			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

// syncState copies settings that live outside the session into its state.
func (o *Orchestrator) syncState() {
	if err := o.config.ParseError(); err != nil {
		o.session.state.ConfigError = err.Error()
	}
}

func (o *Orchestrator) newExercise() {
	if o.session != nil {
		o.session.close()
	}
	cfg := o.config.Get()

	seed := cfg.Exercise.Seed
	if seed == 0 {
		seed = exercise.NewSeed()
	}
	inst := exercise.Generate(seed, exercise.Params{
		MinKittens: cfg.Exercise.MinKittens,
		MaxKittens: cfg.Exercise.MaxKittens,
	})

	o.ui.Ghost.HidePreview()
	o.session = newSession(inst, sessionHooks{
		Input:            &o.ui.Surface,
		Preview:          &o.ui.Ghost,
		PointerThreshold: cfg.Gesture.PointerThreshold,
		TouchThreshold:   cfg.Gesture.TouchThreshold,
		Log:              o.logEvent,
		Notify:           func(msg string) { o.ui.ShowToast(msg, ui.ToastInfo) },
	})
	o.ui.Surface.Handler = o.session
	debug.Log(debug.APP, "new exercise %s: %d kittens, target %d", inst.ID, inst.Total, inst.Target)
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionNone:
		return
	case ui.ActionCheckAnswer:
		res := o.session.check()
		if res.Correct {
			o.ui.ShowToast("Well done!", ui.ToastSuccess)
		}
	case ui.ActionStartOver:
		o.newExercise()
	case ui.ActionTryAgain:
		o.session.tryAgain()
	case ui.ActionClearSelection:
		o.session.clearSelection()
	case ui.ActionDropSelection:
		o.session.dropSelection()
	case ui.ActionToggleTheme:
		o.ui.DarkMode = !o.ui.DarkMode
		theme := "light"
		if o.ui.DarkMode {
			theme = "dark"
		}
		o.config.SetTheme(theme)
	}
	o.window.Invalidate()
}

// logEvent queues an attempt log entry for the store worker
func (o *Orchestrator) logEvent(eventType string, payload map[string]any) {
	if !o.storeOK {
		return
	}
	o.store.RequestChan <- store.Request{Op: store.AppendEvent, Type: eventType, Payload: payload}
}

func (o *Orchestrator) processEvents() {
	for resp := range o.store.ResponseChan {
		o.handleStoreResponse(resp)
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		o.ui.ShowError("Could not save progress")
		o.window.Invalidate()
		return
	}
	debug.Log(debug.STORE, "event %d stored", resp.ID)
}

func Main(debugMode bool) {
	go func() {
		o := NewOrchestrator(debugMode)
		if err := o.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
