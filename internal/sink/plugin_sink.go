package sink

import (
	"fmt"
	"log"
	"strings"

	"github.com/ayusman/kuchipudi-engine/internal/plugin"
)

// PluginSink backs `key.<NAME>` bindings with the teacher's scripted-plugin
// subprocess architecture (SPEC_FULL.md §5.1) instead of direct OS
// injection — useful for actions that need OS scripting (volume,
// brightness, app-specific shortcuts) rather than a raw keycode. It wraps a
// Sink for mouse primitives and every button it was not explicitly mapped
// for, falling back to that Sink so a binding config doesn't need to know
// which backend handles which key.
type PluginSink struct {
	fallback Sink
	manager  *plugin.Manager
	executor *plugin.Executor
	routes   map[string]pluginRoute // ButtonID (string) -> plugin/action
	logger   *log.Logger
}

type pluginRoute struct {
	pluginName string
	downAction string
	upAction   string
}

func NewPluginSink(fallback Sink, manager *plugin.Manager, executor *plugin.Executor, logger *log.Logger) *PluginSink {
	if logger == nil {
		logger = log.Default()
	}
	return &PluginSink{
		fallback: fallback,
		manager:  manager,
		executor: executor,
		routes:   make(map[string]pluginRoute),
		logger:   logger,
	}
}

// Route registers a key.<NAME> binding id to be dispatched to a plugin's
// down/up actions instead of raw key injection.
func (s *PluginSink) Route(buttonID ButtonID, pluginName, downAction, upAction string) {
	s.routes[string(buttonID)] = pluginRoute{pluginName: pluginName, downAction: downAction, upAction: upAction}
}

func (s *PluginSink) MoveRelative(dx, dy int) { s.fallback.MoveRelative(dx, dy) }
func (s *PluginSink) SetPosition(x, y int)    { s.fallback.SetPosition(x, y) }
func (s *PluginSink) Scroll(dx, dy int)       { s.fallback.Scroll(dx, dy) }

func (s *PluginSink) Button(id ButtonID, down bool) {
	route, ok := s.routes[string(id)]
	if !ok {
		s.fallback.Button(id, down)
		return
	}

	action := route.downAction
	if !down {
		action = route.upAction
	}
	if action == "" {
		return
	}

	if err := s.dispatch(route.pluginName, action, string(id)); err != nil {
		// Sink-failure per spec.md §7: logged, engine continues. Pressed
		// state tracks intent, not OS reality.
		s.logger.Printf("sink: plugin %q action %q failed: %v", route.pluginName, action, err)
	}
}

func (s *PluginSink) dispatch(pluginName, action, bindingID string) error {
	p, err := s.manager.Get(pluginName)
	if err != nil {
		return fmt.Errorf("lookup plugin %q: %w", pluginName, err)
	}

	req := &plugin.Request{Action: action, BindingID: bindingID}
	resp, err := s.executor.Execute(p, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin reported failure: %s", resp.Error)
	}
	return nil
}

// KeyNameFromButton strips the "key:" prefix a Button id carries for
// keyboard keys; empty string if id is not a key button.
func KeyNameFromButton(id ButtonID) string {
	s := string(id)
	if name, ok := strings.CutPrefix(s, "key:"); ok {
		return name
	}
	return ""
}
