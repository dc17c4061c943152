// Package main EduMate Server API
//
//	@title			EduMate Server API
//	@version		1.0
//	@description	Turns a teaching prompt into a Manim animation, a narration script and an explanation.
//
//	@license.name	MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@tag.name			Lesson
//	@tag.description	Lesson generation and rendering
package main
