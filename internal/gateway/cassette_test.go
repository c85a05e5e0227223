package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_StableAcrossCalls(t *testing.T) {
	req := CompletionRequest{Task: "outline", Prompt: "plan the episode", JSON: true}

	fp1 := Fingerprint("llm", req)
	fp2 := Fingerprint("llm", req)
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64)
}

func TestFingerprint_SensitiveToCapabilityAndRequest(t *testing.T) {
	req := CompletionRequest{Task: "outline", Prompt: "plan the episode"}

	assert.NotEqual(t, Fingerprint("llm", req), Fingerprint("tts", req))

	changed := req
	changed.Prompt = "plan a different episode"
	assert.NotEqual(t, Fingerprint("llm", req), Fingerprint("llm", changed))
}

func TestCassetteStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewCassetteStore(t.TempDir(), "episode-1")
	req := CompletionRequest{Task: "summarize", Prompt: "sources"}
	fp := Fingerprint("llm", req)

	err := store.Save("llm", fp, &CompletionResponse{Text: `{"summary":"ok"}`})
	require.NoError(t, err)

	var loaded CompletionResponse
	ok, err := store.Load("llm", fp, &loaded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"summary":"ok"}`, loaded.Text)
}

func TestCassetteStore_LoadMissing(t *testing.T) {
	store := NewCassetteStore(t.TempDir(), "episode-1")

	var loaded CompletionResponse
	ok, err := store.Load("llm", Fingerprint("llm", CompletionRequest{Task: "qa"}), &loaded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplayLLM_MissReturnsTypedError(t *testing.T) {
	replay := &ReplayLLM{Cassettes: NewCassetteStore(t.TempDir(), "episode-1")}

	_, err := replay.Complete(context.Background(), CompletionRequest{Task: "script", Prompt: "write it"})
	require.Error(t, err)

	var miss *CassetteMissError
	require.True(t, errors.As(err, &miss))
	assert.Equal(t, "llm", miss.Capability)
	assert.Equal(t, "episode-1", miss.Key)
}

func TestRecordingThenReplay(t *testing.T) {
	cassettes := NewCassetteStore(t.TempDir(), "episode-1")
	recording := &RecordingLLM{Inner: &StubLLM{}, Cassettes: cassettes}
	req := CompletionRequest{Task: "qa", Prompt: "review", JSON: true}

	recorded, err := recording.Complete(context.Background(), req)
	require.NoError(t, err)

	replay := &ReplayLLM{Cassettes: cassettes}
	replayed, err := replay.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, recorded.Text, replayed.Text)
}
