package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CassetteStore persists recorded gateway responses as JSON files under
// <path>/<key>/, one file per request fingerprint. Audio payloads ride along
// as base64 via encoding/json's []byte handling.
type CassetteStore struct {
	dir string
	key string
}

// NewCassetteStore returns a store rooted at path/key. The directory is
// created lazily on the first Save.
func NewCassetteStore(path, key string) *CassetteStore {
	return &CassetteStore{dir: filepath.Join(path, key), key: key}
}

// Key returns the cassette key this store reads and writes.
func (s *CassetteStore) Key() string {
	return s.key
}

// Fingerprint derives a stable identifier for a request: sha256 over the
// capability name and the request's canonical JSON encoding.
func Fingerprint(capability string, request any) string {
	payload, err := json.Marshal(request)
	if err != nil {
		// Marshal of our own request structs cannot fail; keep the
		// signature clean and fall back to the capability alone.
		payload = nil
	}
	sum := sha256.Sum256(append([]byte(capability+":"), payload...))
	return hex.EncodeToString(sum[:])
}

func (s *CassetteStore) filename(capability, fingerprint string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", capability, fingerprint[:20]))
}

// Load reads a recorded response into out. The second return is false when
// no recording exists for the fingerprint.
func (s *CassetteStore) Load(capability, fingerprint string, out any) (bool, error) {
	data, err := os.ReadFile(s.filename(capability, fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cassette: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode cassette %s: %w", fingerprint[:20], err)
	}
	return true, nil
}

// Save records a response for a fingerprint, overwriting any prior recording.
func (s *CassetteStore) Save(capability, fingerprint string, response any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cassette dir: %w", err)
	}
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cassette: %w", err)
	}
	if err := os.WriteFile(s.filename(capability, fingerprint), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cassette: %w", err)
	}
	return nil
}
