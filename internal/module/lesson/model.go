package lesson

// Stage is a step of the generation pipeline.
type Stage string

const (
	StageReceived       Stage = "received"
	StageValidated      Stage = "validated"
	StageModelCalled    Stage = "model_called"
	StageParsed         Stage = "parsed"
	StageSanitized      Stage = "sanitized"
	StageSceneExtracted Stage = "scene_extracted"
	StageRendered       Stage = "rendered"
	StageResponded      Stage = "responded"
)

// Result is a fully rendered lesson.
type Result struct {
	JobID    string
	Sections Sections
	// Code is the sanitized code that was rendered.
	Code     string
	Scene    string
	VideoURL string
}
