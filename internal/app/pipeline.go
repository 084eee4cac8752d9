package app

import (
	"log"
	"time"

	"github.com/ayusman/kuchipudi-engine/internal/engine"
)

// runPipeline is the main capture loop. It manages idle/active FPS
// transitions based on motion detection, then feeds every active-mode frame
// either into the in-progress calibration session or into the evaluation
// engine.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection
// 4. If a calibration session is active, sample it; otherwise Tick the engine
// 5. After 2s no motion, switch back to idle mode
func (a *App) runPipeline() {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode || a.detector == nil {
				frame.Close()
				continue
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			tMs := float64(time.Now().UnixMilli())
			lf := engine.FromDetections(tMs, hands)

			a.mu.RLock()
			sess := a.calibSess
			eng := a.engine
			snk := a.sink
			a.mu.RUnlock()

			if sess != nil {
				for _, h := range lf.Hands {
					sess.Sample(h.Landmarks, h.Side)
				}
				continue
			}

			eng.Tick(lf, snk)
		}
	}
}
