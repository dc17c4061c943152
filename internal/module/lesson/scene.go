package lesson

import "regexp"

// sceneClass matches a class whose bases name Scene, possibly module
// qualified (manim.Scene). Derived names such as MovingCameraScene do not match.
var sceneClass = regexp.MustCompile(`class\s+(\w+)\s*\(\s*[^)]*\bScene\b[^)]*\)\s*:`)

// ExtractSceneName returns the first Scene subclass declared in code.
func ExtractSceneName(code string) (string, error) {
	m := sceneClass.FindStringSubmatch(code)
	if m == nil {
		return "", ErrNoScene
	}
	return m[1], nil
}
