package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command triggered by a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	// ActionSelectModel picks catalog entry Arg.
	ActionSelectModel
	// ActionToggleView moves keyboard focus between the two views.
	ActionToggleView
	ActionCycleProjection
	ActionCycleTexture
	ActionToggleShading
	ActionToggleAnimation
	// ActionStepComponent moves the selection Arg nodes along the tree order.
	ActionStepComponent
	// ActionSelectAxis picks the axis Arg for component edits.
	ActionSelectAxis
	// ActionRotateComponent turns the component by Arg steps about the axis.
	ActionRotateComponent
	// ActionOrbit turns the focused camera by Arg steps.
	ActionOrbit
	// ActionZoom moves the focused camera by Arg steps.
	ActionZoom
	ActionScreenshot
	ActionSavePose
	ActionLoadPose
	ActionResetPose
	ActionPrintTree
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionQuit:            "quit",
	ActionSelectModel:     "select-model",
	ActionToggleView:      "toggle-view",
	ActionCycleProjection: "cycle-projection",
	ActionCycleTexture:    "cycle-texture",
	ActionToggleShading:   "toggle-shading",
	ActionToggleAnimation: "toggle-animation",
	ActionStepComponent:   "step-component",
	ActionSelectAxis:      "select-axis",
	ActionRotateComponent: "rotate-component",
	ActionOrbit:           "orbit",
	ActionZoom:            "zoom",
	ActionScreenshot:      "screenshot",
	ActionSavePose:        "save-pose",
	ActionLoadPose:        "load-pose",
	ActionResetPose:       "reset-pose",
	ActionPrintTree:       "print-tree",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Command is an action with its argument.
type Command struct {
	Action Action
	Arg    int
}

// Bindings maps key scancodes to commands.
type Bindings map[sdl.Scancode]Command

// DefaultBindings returns the viewer key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE: {Action: ActionQuit},
		sdl.SCANCODE_1:      {Action: ActionSelectModel, Arg: 0},
		sdl.SCANCODE_2:      {Action: ActionSelectModel, Arg: 1},
		sdl.SCANCODE_3:      {Action: ActionSelectModel, Arg: 2},
		sdl.SCANCODE_4:      {Action: ActionSelectModel, Arg: 3},
		sdl.SCANCODE_TAB:    {Action: ActionToggleView},
		sdl.SCANCODE_P:      {Action: ActionCycleProjection},
		sdl.SCANCODE_T:      {Action: ActionCycleTexture},
		sdl.SCANCODE_L:      {Action: ActionToggleShading},
		sdl.SCANCODE_SPACE:  {Action: ActionToggleAnimation},
		sdl.SCANCODE_N:      {Action: ActionStepComponent, Arg: 1},
		sdl.SCANCODE_B:      {Action: ActionStepComponent, Arg: -1},
		sdl.SCANCODE_X:      {Action: ActionSelectAxis, Arg: 0},
		sdl.SCANCODE_Y:      {Action: ActionSelectAxis, Arg: 1},
		sdl.SCANCODE_Z:      {Action: ActionSelectAxis, Arg: 2},
		sdl.SCANCODE_E:      {Action: ActionRotateComponent, Arg: 1},
		sdl.SCANCODE_Q:      {Action: ActionRotateComponent, Arg: -1},
		sdl.SCANCODE_LEFT:   {Action: ActionOrbit, Arg: -1},
		sdl.SCANCODE_RIGHT:  {Action: ActionOrbit, Arg: 1},
		sdl.SCANCODE_UP:     {Action: ActionZoom, Arg: 1},
		sdl.SCANCODE_DOWN:   {Action: ActionZoom, Arg: -1},
		sdl.SCANCODE_F12:    {Action: ActionScreenshot},
		sdl.SCANCODE_F5:     {Action: ActionSavePose},
		sdl.SCANCODE_F9:     {Action: ActionLoadPose},
		sdl.SCANCODE_R:      {Action: ActionResetPose},
		sdl.SCANCODE_F1:     {Action: ActionPrintTree},
	}
}

// Commands returns the commands bound to the key presses in events, in order.
func (b Bindings) Commands(events []Event) []Command {
	var cmds []Command
	for _, e := range events {
		if e.Type != EventKeyDown {
			continue
		}
		if c, ok := b[e.Key]; ok {
			cmds = append(cmds, c)
		}
	}
	return cmds
}
