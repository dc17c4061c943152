// Command edumate runs the lesson pipeline from the command line and prints
// the same JSON the HTTP API returns.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumate/server/internal/app"
	"github.com/edumate/server/internal/module/lesson"
	"github.com/edumate/server/internal/shared/config"
)

type pipeline interface {
	Generate(ctx context.Context, req *lesson.GenerateRequest) (*lesson.Result, error)
	Render(ctx context.Context, code string) (*lesson.Result, error)
}

// newPipeline builds the full pipeline from configuration. Tests replace it.
var newPipeline = func(ctx context.Context) (pipeline, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return app.InitializeLessonService(ctx, cfg)
}

// newRenderPipeline builds a render-only pipeline that needs no model
// credentials. Tests replace it.
var newRenderPipeline = func(ctx context.Context) (pipeline, func(), error) {
	cfg, err := config.LoadForRender()
	if err != nil {
		return nil, nil, err
	}
	return app.InitializeRenderService(ctx, cfg)
}

var timeout time.Duration

// errPipelineFailed marks a failure whose JSON body was already printed.
var errPipelineFailed = errors.New("pipeline failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "edumate",
		Short:         "Generate animated lessons with Manim",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Overall timeout")

	root.AddCommand(&cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate code, narration and explanation for a prompt and render it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	})
	root.AddCommand(&cobra.Command{
		Use:   "render <file>",
		Short: "Render a Manim source file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	})
	return root
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	p, cleanup, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := p.Generate(ctx, &lesson.GenerateRequest{Prompt: strings.Join(args, " ")})
	if err != nil {
		return printError(cmd.OutOrStdout(), err)
	}
	return printJSON(cmd.OutOrStdout(), res.ToResponse())
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		code []byte
		err  error
	)
	if args[0] == "-" {
		code, err = io.ReadAll(cmd.InOrStdin())
	} else {
		code, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	p, cleanup, err := newRenderPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := p.Render(ctx, string(code))
	if err != nil {
		return printError(cmd.OutOrStdout(), err)
	}
	return printJSON(cmd.OutOrStdout(), lesson.RenderResponse{
		Code:     res.Code,
		VideoURL: res.VideoURL,
	})
}

func printError(w io.Writer, err error) error {
	if perr := printJSON(w, lesson.ToAppError(err).ToResponse()); perr != nil {
		return perr
	}
	return fmt.Errorf("%w: %w", errPipelineFailed, err)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errPipelineFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
