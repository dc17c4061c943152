package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edumate/server/internal/module/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	prompt string
	code   string
	err    error
}

func (f *fakePipeline) Generate(ctx context.Context, req *lesson.GenerateRequest) (*lesson.Result, error) {
	f.prompt = req.Prompt
	if f.err != nil {
		return nil, f.err
	}
	narration := "Hello"
	return &lesson.Result{
		Code:     "class Intro(Scene):\n    pass",
		Sections: lesson.Sections{Narration: &narration},
		VideoURL: "http://localhost:5000/static/videos/x.mp4",
	}, nil
}

func (f *fakePipeline) Render(ctx context.Context, code string) (*lesson.Result, error) {
	f.code = code
	if f.err != nil {
		return nil, f.err
	}
	return &lesson.Result{Code: code, VideoURL: "http://localhost:5000/static/videos/y.mp4"}, nil
}

// usePipeline makes both commands run against p.
func usePipeline(t *testing.T, p pipeline) {
	t.Helper()
	origFull, origRender := newPipeline, newRenderPipeline
	factory := func(context.Context) (pipeline, func(), error) {
		return p, func() {}, nil
	}
	newPipeline, newRenderPipeline = factory, factory
	t.Cleanup(func() { newPipeline, newRenderPipeline = origFull, origRender })
}

func execute(t *testing.T, stdin string, args ...string) (map[string]any, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	var body map[string]any
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &body), out.String())
	}
	return body, err
}

func TestGenerateCmd(t *testing.T) {
	p := &fakePipeline{}
	usePipeline(t, p)

	body, err := execute(t, "", "generate", "Explain", "vectors")
	require.NoError(t, err)

	assert.Equal(t, "Explain vectors", p.prompt)
	assert.Equal(t, "Hello", body["narration"])
	assert.Nil(t, body["explanation"])
	assert.Equal(t, "http://localhost:5000/static/videos/x.mp4", body["video_url"])
}

func TestGenerateCmd_Failure(t *testing.T) {
	usePipeline(t, &fakePipeline{err: lesson.ErrNoCode})

	body, err := execute(t, "", "generate", "p")

	assert.ErrorIs(t, err, errPipelineFailed)
	assert.ErrorIs(t, err, lesson.ErrNoCode)
	assert.Equal(t, map[string]any{"error": "No valid code extracted"}, body)
}

func TestRenderCmd_File(t *testing.T) {
	p := &fakePipeline{}
	usePipeline(t, p)

	src := filepath.Join(t.TempDir(), "scene.py")
	require.NoError(t, os.WriteFile(src, []byte("class A(Scene):\n    pass\n"), 0o644))

	body, err := execute(t, "", "render", src)
	require.NoError(t, err)

	assert.Equal(t, "class A(Scene):\n    pass\n", p.code)
	assert.Equal(t, "http://localhost:5000/static/videos/y.mp4", body["video_url"])
}

func TestRenderCmd_Stdin(t *testing.T) {
	p := &fakePipeline{}
	usePipeline(t, p)

	_, err := execute(t, "class B(Scene):\n    pass", "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "class B(Scene):\n    pass", p.code)
}

func TestRenderCmd_MissingFile(t *testing.T) {
	usePipeline(t, &fakePipeline{})

	_, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.py"))
	assert.ErrorContains(t, err, "read source")
}

func TestRenderCmd_DoesNotNeedModel(t *testing.T) {
	p := &fakePipeline{}
	usePipeline(t, p)
	newPipeline = func(context.Context) (pipeline, func(), error) {
		return nil, nil, errors.New("config: no API key for model provider \"openai\"")
	}

	_, err := execute(t, "class C(Scene):\n    pass", "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "class C(Scene):\n    pass", p.code)

	_, err = execute(t, "", "generate", "p")
	assert.ErrorContains(t, err, "no API key")
}
