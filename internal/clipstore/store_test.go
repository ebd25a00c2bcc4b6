package clipstore

import (
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/numeral"
)

func writeClip(t *testing.T, fs afero.Fs, path string, sampleRate int, samples []int) {
	t.Helper()
	writeClipDepth(t, fs, path, sampleRate, 16, samples)
}

func writeClipDepth(t *testing.T, fs afero.Fs, path string, sampleRate, bitDepth int, samples []int) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create clip dir: %v", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		t.Fatalf("failed to create clip file: %v", err)
	}
	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write clip: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close clip file: %v", err)
	}
}

func TestResolveDecodesAndCaches(t *testing.T) {
	fs := afero.NewMemMapFs()
	tok := numeral.Token{ID: "7", Text: "επτά"}
	writeClip(t, fs, filepath.Join("clips", "male", "7.wav"), 16000, []int{1, -2, 3})

	store := New(fs, "clips")
	clip, err := store.Resolve(tok, model.VoiceMale)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if clip.SampleRate != 16000 {
		t.Fatalf("unexpected sample rate %d", clip.SampleRate)
	}
	want := []int16{1, -2, 3}
	if len(clip.Samples) != len(want) {
		t.Fatalf("unexpected sample count %d", len(clip.Samples))
	}
	for i, v := range want {
		if clip.Samples[i] != v {
			t.Fatalf("sample %d = %d, want %d", i, clip.Samples[i], v)
		}
	}

	again, err := store.Resolve(tok, model.VoiceMale)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if again != clip {
		t.Fatal("expected cached clip on second resolve")
	}
}

func TestResolveMissingAsset(t *testing.T) {
	store := New(afero.NewMemMapFs(), "clips")
	tok := numeral.Token{ID: "30", Text: "τριάντα"}
	_, err := store.Resolve(tok, model.VoiceFemale)
	if err == nil {
		t.Fatal("expected error for missing clip")
	}
	missing, ok := err.(*MissingAssetError)
	if !ok {
		t.Fatalf("error type %T, want *MissingAssetError", err)
	}
	if missing.Token.ID != "30" || missing.Voice != model.VoiceFemale {
		t.Fatalf("unexpected error detail: %+v", missing)
	}
}

func TestResolveRejectsMixedSampleRates(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeClip(t, fs, filepath.Join("clips", "male", "1.wav"), 16000, []int{1})
	writeClip(t, fs, filepath.Join("clips", "male", "2.wav"), 24000, []int{2})

	store := New(fs, "clips")
	if _, err := store.Resolve(numeral.Token{ID: "1", Text: "ένα"}, model.VoiceMale); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if _, err := store.Resolve(numeral.Token{ID: "2", Text: "δύο"}, model.VoiceMale); err == nil {
		t.Fatal("expected sample-rate mismatch error")
	}
}

// A clip at any other bit depth would narrow into wrapped garbage, so
// Resolve must reject it instead of returning a silent buffer.
func TestResolveRejectsNon16BitClips(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeClipDepth(t, fs, filepath.Join("clips", "male", "5.wav"), 16000, 24, []int{1048576, -1048576})

	store := New(fs, "clips")
	tok := numeral.Token{ID: "5", Text: "πέντε"}
	_, err := store.Resolve(tok, model.VoiceMale)
	if err == nil {
		t.Fatal("expected bit-depth error for 24-bit clip")
	}
	bad := store.Verify([]numeral.Token{tok}, model.VoiceMale)
	if len(bad) != 1 || bad[0] != "5" {
		t.Fatalf("Verify missed the bad clip: %v", bad)
	}
}

func TestResolveAllStopsAtFirstMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeClip(t, fs, filepath.Join("clips", "male", "100n.wav"), 16000, []int{1})

	store := New(fs, "clips")
	toks := []numeral.Token{
		{ID: "100n", Text: "εκατόν"},
		{ID: "1", Text: "ένα"},
	}
	_, err := store.ResolveAll(toks, model.VoiceMale)
	if _, ok := err.(*MissingAssetError); !ok {
		t.Fatalf("expected MissingAssetError, got %v", err)
	}
}

func TestVerifyReportsMissingKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeClip(t, fs, filepath.Join("clips", "female", "10.wav"), 16000, []int{1})

	store := New(fs, "clips")
	toks := []numeral.Token{
		{ID: "10", Text: "δέκα"},
		{ID: "20", Text: "είκοσι"},
		{ID: "1000", Text: "χίλια"},
	}
	bad := store.Verify(toks, model.VoiceFemale)
	if len(bad) != 2 || bad[0] != "1000" || bad[1] != "20" {
		t.Fatalf("unexpected missing keys: %v", bad)
	}
}
