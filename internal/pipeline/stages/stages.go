// Package stages implements the thirteen content-generation stages behind a
// uniform execution contract. A stage is a pure function of its declared
// input and the gateways it is given: it never reads other stages' artifacts
// and raises typed errors instead of swallowing failures.
package stages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/gateway"
)

// The thirteen stage names, in pipeline order. The literal strings are part
// of the artifact-layout contract.
const (
	StagePrepare      = "prepare"
	StageDiscover     = "discover"
	StageDisambiguate = "disambiguate"
	StageRank         = "rank"
	StageScrape       = "scrape"
	StageExtract      = "extract"
	StageSummarize    = "summarize"
	StageContrast     = "contrast"
	StageOutline      = "outline"
	StageScript       = "script"
	StageQA           = "qa"
	StageTTS          = "tts"
	StagePackage      = "package"
)

// Order is the fixed execution order.
var Order = []string{
	StagePrepare,
	StageDiscover,
	StageDisambiguate,
	StageRank,
	StageScrape,
	StageExtract,
	StageSummarize,
	StageContrast,
	StageOutline,
	StageScript,
	StageQA,
	StageTTS,
	StagePackage,
}

// Deps is everything a stage execution receives beyond its input.
type Deps struct {
	Gateways gateway.Set
	Emit     events.Emitter
}

// Stage is the uniform execution contract the orchestrator drives. Run takes
// the stage's JSON-encoded input and returns its JSON-encoded output.
type Stage struct {
	Name string
	Run  func(ctx context.Context, in json.RawMessage, deps Deps) (json.RawMessage, error)
}

// adapt lifts a typed stage body into the uniform contract, adding input
// decoding, output encoding and the mandatory start/finish events.
func adapt[I any, O any](name string, fn func(context.Context, I, Deps) (*O, error)) Stage {
	return Stage{
		Name: name,
		Run: func(ctx context.Context, raw json.RawMessage, deps Deps) (json.RawMessage, error) {
			emit := deps.Emit
			if emit == nil {
				emit = events.Nop
				deps.Emit = emit
			}

			var in I
			if err := json.Unmarshal(raw, &in); err != nil {
				return nil, fmt.Errorf("invalid %s input: %w", name, err)
			}

			emit(events.StageStarted(name))
			out, err := fn(ctx, in, deps)
			if err != nil {
				emit(events.StageFailed(name, err))
				return nil, err
			}
			emit(events.StageCompleted(name))

			encoded, err := json.Marshal(out)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s output: %w", name, err)
			}
			return encoded, nil
		},
	}
}

// Registry returns the thirteen stages in execution order.
func Registry() []Stage {
	return []Stage{
		adapt(StagePrepare, runPrepare),
		adapt(StageDiscover, runDiscover),
		adapt(StageDisambiguate, runDisambiguate),
		adapt(StageRank, runRank),
		adapt(StageScrape, runScrape),
		adapt(StageExtract, runExtract),
		adapt(StageSummarize, runSummarize),
		adapt(StageContrast, runContrast),
		adapt(StageOutline, runOutline),
		adapt(StageScript, runScript),
		adapt(StageQA, runQA),
		adapt(StageTTS, runTTS),
		adapt(StagePackage, runPackage),
	}
}

// ByName returns the stage with the given name.
func ByName(name string) (Stage, bool) {
	for _, stage := range Registry() {
		if stage.Name == name {
			return stage, true
		}
	}
	return Stage{}, false
}

// Index returns a stage's position in the fixed order, or -1.
func Index(name string) int {
	for i, n := range Order {
		if n == name {
			return i
		}
	}
	return -1
}
