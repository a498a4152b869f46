// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms and lights every surface of the scene.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader writes the flat per-triangle color.
//
//go:embed scene.frag
var SceneFragmentShader string
