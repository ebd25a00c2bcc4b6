// Package clipstore resolves vocabulary tokens to pre-rendered audio clips.
package clipstore

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/numeral"
)

// Clip holds decoded mono PCM for one vocabulary token.
type Clip struct {
	Token      numeral.Token
	SampleRate int
	Samples    []int16
}

// MissingAssetError reports an absent clip for a (token, voice) pair.
type MissingAssetError struct {
	Token numeral.Token
	Voice model.Voice
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("no clip for token %q (%s voice)", e.Token.ID, e.Voice)
}

type clipKey struct {
	id    string
	voice model.Voice
}

// Store reads clips from a read-only directory tree <root>/<voice>/<id>.wav.
// Decoded clips are cached; the store never writes to the filesystem.
type Store struct {
	fs    afero.Fs
	root  string
	rate  int
	cache map[clipKey]*Clip
}

// New returns a Store rooted at dir on the given filesystem.
func New(fs afero.Fs, dir string) *Store {
	return &Store{
		fs:    fs,
		root:  dir,
		cache: map[clipKey]*Clip{},
	}
}

// Resolve returns the clip for a (token, voice) pair, decoding it on first
// use. A nonexistent file yields a MissingAssetError.
func (s *Store) Resolve(tok numeral.Token, voice model.Voice) (*Clip, error) {
	key := clipKey{id: tok.ID, voice: voice}
	if clip, ok := s.cache[key]; ok {
		return clip, nil
	}

	path := s.clipPath(tok, voice)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat clip %s: %w", path, err)
	}
	if !exists {
		return nil, &MissingAssetError{Token: tok, Voice: voice}
	}

	clip, err := s.decode(tok, path)
	if err != nil {
		return nil, err
	}
	if s.rate == 0 {
		s.rate = clip.SampleRate
	} else if clip.SampleRate != s.rate {
		return nil, fmt.Errorf("clip %s has sample rate %d, store uses %d", path, clip.SampleRate, s.rate)
	}
	s.cache[key] = clip
	return clip, nil
}

// ResolveAll resolves every token of a verbalization in order, failing on
// the first missing or corrupt clip.
func (s *Store) ResolveAll(toks []numeral.Token, voice model.Voice) ([]*Clip, error) {
	clips := make([]*Clip, 0, len(toks))
	for _, tok := range toks {
		clip, err := s.Resolve(tok, voice)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// Verify resolves every given token and returns the asset keys that are
// missing or undecodable, sorted.
func (s *Store) Verify(toks []numeral.Token, voice model.Voice) []string {
	var bad []string
	for _, tok := range toks {
		if _, err := s.Resolve(tok, voice); err != nil {
			bad = append(bad, tok.ID)
		}
	}
	sort.Strings(bad)
	return bad
}

func (s *Store) clipPath(tok numeral.Token, voice model.Voice) string {
	return filepath.Join(s.root, string(voice), tok.ID+".wav")
}

func (s *Store) decode(tok numeral.Token, path string) (*Clip, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode clip %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels != 1 {
		return nil, fmt.Errorf("clip %s is not mono", path)
	}
	// Samples are narrowed to int16 below; any other depth would wrap
	// silently into garbage.
	if buf.SourceBitDepth != 16 {
		return nil, fmt.Errorf("clip %s has bit depth %d, want 16", path, buf.SourceBitDepth)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return &Clip{
		Token:      tok,
		SampleRate: buf.Format.SampleRate,
		Samples:    samples,
	}, nil
}
