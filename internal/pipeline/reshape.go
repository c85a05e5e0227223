package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// This file is the single place where one stage's persisted output is
// reshaped into the next stage's input. Each stage pair gets its own
// function so schema migrations stay local and testable; nothing else in
// the engine is allowed to patch artifact JSON.

// predecessorsOf returns the stages whose output artifact can feed the
// given stage, in preference order. The last entry is the required one.
func predecessorsOf(stage string) []string {
	if stage == stages.StageTTS {
		// QA output is preferred but optional; the script alone suffices.
		return []string{stages.StageQA, stages.StageScript}
	}
	idx := stages.Index(stage)
	if idx <= 0 {
		return nil
	}
	return []string{stages.Order[idx-1]}
}

// InputFor reconstructs a stage's input from a predecessor's output
// artifact. prevStage says which predecessor produced prev; for most stages
// that is simply the preceding stage in order.
func InputFor(stage, prevStage string, prev json.RawMessage) (json.RawMessage, error) {
	var in any
	var err error

	switch stage {
	case stages.StageDiscover:
		in, err = discoverInput(prev)
	case stages.StageDisambiguate:
		in, err = disambiguateInput(prev)
	case stages.StageRank:
		in, err = rankInput(prev)
	case stages.StageScrape:
		in, err = scrapeInput(prev)
	case stages.StageExtract:
		in, err = extractInput(prev)
	case stages.StageSummarize:
		in, err = summarizeInput(prev)
	case stages.StageContrast:
		in, err = contrastInput(prev)
	case stages.StageOutline:
		in, err = outlineInput(prev)
	case stages.StageScript:
		in, err = scriptInput(prev)
	case stages.StageQA:
		in, err = qaInput(prev)
	case stages.StageTTS:
		in, err = ttsInput(prev)
	case stages.StagePackage:
		in, err = packageInput(prev)
	default:
		return nil, fmt.Errorf("no input reshaping defined for stage %q", stage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reshape %s output into %s input: %w", prevStage, stage, err)
	}
	return json.Marshal(in)
}

func discoverInput(prev json.RawMessage) (any, error) {
	var out types.PrepareOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.DiscoverInput{Config: out.Config}, nil
}

func disambiguateInput(prev json.RawMessage) (any, error) {
	var out types.DiscoverOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.DisambiguateInput{Config: out.Config, Candidates: out.Candidates}, nil
}

func rankInput(prev json.RawMessage) (any, error) {
	var out types.DisambiguateOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.RankInput{Config: out.Config, Candidates: out.Candidates}, nil
}

func scrapeInput(prev json.RawMessage) (any, error) {
	var out types.RankOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.ScrapeInput{Config: out.Config, Sources: out.Ranked}, nil
}

func extractInput(prev json.RawMessage) (any, error) {
	var out types.ScrapeOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.ExtractInput{Config: out.Config, Pages: out.Pages}, nil
}

func summarizeInput(prev json.RawMessage) (any, error) {
	var out types.ExtractOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.SummarizeInput{Config: out.Config, Documents: out.Documents}, nil
}

func contrastInput(prev json.RawMessage) (any, error) {
	var out types.SummarizeOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.ContrastInput{Config: out.Config, Summaries: out.Summaries}, nil
}

func outlineInput(prev json.RawMessage) (any, error) {
	var out types.ContrastOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.OutlineInput{Config: out.Config, Summaries: out.Summaries, Contrasts: out.Contrasts}, nil
}

func scriptInput(prev json.RawMessage) (any, error) {
	var out types.OutlineOutput
	if err := json.Unmarshal(migrateOutlineOutput(prev), &out); err != nil {
		return nil, err
	}
	return types.ScriptInput{Config: out.Config, Outline: out.Outline}, nil
}

func qaInput(prev json.RawMessage) (any, error) {
	var out types.ScriptOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.QAInput{Config: out.Config, Script: out.Script}, nil
}

// ttsInput accepts either a qa output or, when review was skipped or never
// ran, a script output. Both carry the config and the script.
func ttsInput(prev json.RawMessage) (any, error) {
	var out struct {
		Config types.PreparedConfig `json:"config"`
		Script types.Script         `json:"script"`
	}
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.TTSInput{Config: out.Config, Narrative: out.Script.Narrative}, nil
}

func packageInput(prev json.RawMessage) (any, error) {
	var out types.TTSOutput
	if err := json.Unmarshal(prev, &out); err != nil {
		return nil, err
	}
	return types.PackageInput{
		Config:          out.Config,
		Narrative:       out.Narrative,
		DurationSeconds: out.DurationSeconds,
		AudioKey:        out.AudioKey,
	}, nil
}

// migrateOutlineOutput upgrades outline artifacts written before the
// "segments" field was renamed to "sections". The rename is applied to the
// decoded outline object, never textually, so the literal string "segments"
// appearing as a value elsewhere in the artifact stays untouched.
func migrateOutlineOutput(raw json.RawMessage) json.RawMessage {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return raw
	}
	var outline map[string]json.RawMessage
	if err := json.Unmarshal(doc["outline"], &outline); err != nil {
		return raw
	}
	segments, legacy := outline["segments"]
	if _, modern := outline["sections"]; !legacy || modern {
		return raw
	}

	outline["sections"] = segments
	delete(outline, "segments")
	migrated, err := json.Marshal(outline)
	if err != nil {
		return raw
	}
	doc["outline"] = migrated
	fixed, err := json.Marshal(doc)
	if err != nil {
		return raw
	}
	return fixed
}

// skipOutput synthesizes a passthrough output for a disabled optional stage
// from that stage's would-be input.
func skipOutput(stage string, input json.RawMessage) (json.RawMessage, error) {
	var out any

	switch stage {
	case stages.StageDisambiguate:
		var in types.DisambiguateInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		out = types.DisambiguateOutput{Config: in.Config, Candidates: in.Candidates}
	case stages.StageContrast:
		var in types.ContrastInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		out = types.ContrastOutput{Config: in.Config, Summaries: in.Summaries}
	case stages.StageQA:
		var in types.QAInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		out = types.QAOutput{Config: in.Config, Script: in.Script, Report: types.QAReport{Approved: true}}
	default:
		return nil, fmt.Errorf("stage %q cannot be skipped", stage)
	}
	return json.Marshal(out)
}
