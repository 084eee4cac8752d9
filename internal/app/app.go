// Package app wires capture, detection, the evaluation engine, and the
// action sink into the running pointer/button pipeline, plus the guided
// calibration flow that feeds the engine's calibration parameters.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/kuchipudi-engine/internal/calib"
	"github.com/ayusman/kuchipudi-engine/internal/capture"
	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/detector"
	"github.com/ayusman/kuchipudi-engine/internal/engine"
	"github.com/ayusman/kuchipudi-engine/internal/plugin"
	"github.com/ayusman/kuchipudi-engine/internal/sink"
	"github.com/ayusman/kuchipudi-engine/internal/store"
)

// Pipeline timing constants, unchanged from the teacher's motion-triggered
// idle/active capture loop.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	ConfigPath   string
}

// App is the main application that orchestrates hand tracking and the
// pointer/button evaluation engine.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector

	cfg    *config.Config
	engine *engine.Engine
	sink   sink.Sink

	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	calibSess *calib.Session

	enabled        bool
	mu             sync.RWMutex
	stopCh         chan struct{}
	lastMotionTime time.Time
}

// New creates a new App instance with the given configuration.
func New(appConfig Config) *App {
	motionThreshold := appConfig.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	screenWidth, screenHeight := sink.ScreenSize()

	cfg, err := config.Load(appConfig.ConfigPath, screenWidth, screenHeight)
	if err != nil {
		log.Printf("Config not loaded (%v), starting from defaults", err)
		cfg = config.Minimal()
		config.Autofill(cfg, screenWidth, screenHeight)
	}

	pluginMgr := plugin.NewManager(appConfig.PluginDir)
	pluginExec := plugin.NewExecutor(5000) // 5 second timeout for plugin execution

	osSink := sink.NewOSSink(log.Default())
	pluginSink := sink.NewPluginSink(osSink, pluginMgr, pluginExec, log.Default())

	a := &App{
		config:         appConfig,
		camera:         capture.NewCamera(appConfig.CameraID),
		motion:         capture.NewMotionDetector(motionThreshold),
		cfg:            cfg,
		engine:         engine.New(cfg),
		sink:           pluginSink,
		pluginMgr:      pluginMgr,
		pluginExec:     pluginExec,
		enabled:        false,
		stopCh:         nil,
		lastMotionTime: time.Now(),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables the evaluation pipeline.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !enabled && a.enabled {
		a.engine.ReleaseAll(a.sink)
	}
	a.enabled = enabled
}

// IsEnabled returns whether the evaluation pipeline is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Config returns the currently loaded engine configuration.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// ReloadConfig re-reads the config file from disk and rebuilds the engine
// from it, replacing the running one atomically under the App's lock.
func (a *App) ReloadConfig() error {
	screenWidth, screenHeight := sink.ScreenSize()
	cfg, err := config.Load(a.config.ConfigPath, screenWidth, screenHeight)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.engine = engine.New(cfg)
	return nil
}

// SaveConfig persists the current in-memory config back to disk.
func (a *App) SaveConfig() error {
	a.mu.RLock()
	cfg := a.cfg
	a.mu.RUnlock()
	return config.Save(a.config.ConfigPath, cfg)
}

// StartCalibration begins a new guided calibration session for the given
// hand, per spec.md §4.5. Any session already in progress is discarded.
func (a *App) StartCalibration(hand engine.HandSide) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calibSess = calib.NewSession(hand)
}

// CalibrationStep reports the current step of the in-progress calibration
// session, or ok=false if no session is active.
func (a *App) CalibrationStep() (calib.Step, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.calibSess == nil {
		return 0, false
	}
	return a.calibSess.Step(), true
}

// AdvanceCalibration commits the current step's samples into the live
// config's calibration, rebuilds the engine from it, and moves the session
// to its next step. Returns an error if no session is active or if the
// current step lacks enough samples to fit.
func (a *App) AdvanceCalibration() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.calibSess == nil {
		return fmt.Errorf("app: no calibration session in progress")
	}
	if err := a.calibSess.Advance(&a.cfg.Calibration); err != nil {
		return err
	}
	a.engine = engine.New(a.cfg)
	if a.calibSess.Done() {
		a.calibSess = nil
	}
	return nil
}

// CancelCalibration discards the in-progress session's pending samples
// without touching the config, per spec.md §4.5's explicit cancel semantics.
func (a *App) CancelCalibration() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calibSess = nil
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the capture and evaluation pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Evaluation pipeline started")
	return nil
}

// Stop halts the pipeline, releases any pressed outputs, and releases
// resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	a.engine.ReleaseAll(a.sink)

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Evaluation pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the evaluation engine.
func (a *App) Engine() *engine.Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine
}

// Sink returns the action sink the engine emits to.
func (a *App) Sink() sink.Sink {
	return a.sink
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
