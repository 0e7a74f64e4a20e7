package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"cubefield/scene"
)

var keyBindings = map[glfw.Key]scene.Key{
	glfw.KeyW:     scene.KeyForward,
	glfw.KeyS:     scene.KeyBack,
	glfw.KeyA:     scene.KeyLeft,
	glfw.KeyD:     scene.KeyRight,
	glfw.KeyQ:     scene.KeyDown,
	glfw.KeyE:     scene.KeyUp,
	glfw.KeyLeft:  scene.KeyYawLeft,
	glfw.KeyRight: scene.KeyYawRight,
	glfw.KeyUp:    scene.KeyPitchUp,
	glfw.KeyDown:  scene.KeyPitchDown,
	glfw.KeySpace: scene.KeySpawn,
}

// bindInput forwards window input to the session. Callbacks fire from
// glfw.PollEvents on the frame thread.
func bindInput(window *glfw.Window, session *scene.Session) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		k, ok := keyBindings[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			session.KeyDown(k)
		case glfw.Release:
			session.KeyUp(k)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		x, y := w.GetCursorPos()
		session.Click(float32(x), float32(y))
	})
}
