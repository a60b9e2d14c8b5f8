package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Universe declares what the fetch tool should pull: the benchmark plus the
// symbols of each sleeve.
type Universe struct {
	Benchmark string   `json:"benchmark"`
	Dividend  []string `json:"dividend"`
	Growth    []string `json:"growth"`
	UpdatedAt string   `json:"updated_at,omitempty"` // ISO 8601 timestamp
}

// LoadUniverse loads a universe from a JSON file.
func LoadUniverse(filePath string) (*Universe, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}
	var u Universe
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to parse universe file: %w", err)
	}
	if u.Benchmark == "" {
		return nil, fmt.Errorf("universe file has no benchmark symbol")
	}
	return &u, nil
}

// SaveUniverse saves a universe to a JSON file.
func SaveUniverse(u *Universe, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal universe: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write universe file: %w", err)
	}
	return nil
}

// GetDefaultUniversePath returns the default path for the universe file.
func GetDefaultUniversePath() string {
	if path := os.Getenv("UNIVERSE_FILE"); path != "" {
		return path
	}
	return "./data/universe.json"
}

// DefaultUniverse is the stock list the strategy was designed around:
// dividend aristocrats against SPY, with a small high-growth sleeve.
func DefaultUniverse() *Universe {
	return &Universe{
		Benchmark: "SPY",
		Dividend: []string{
			"KO", "PG", "JNJ", "PEP", "MMM", "T", "WMT", "JPM", "BAC", "CVX",
			"XOM", "IBM", "DUK", "USB", "LOW", "TGT", "SO", "SYK", "INTU", "AVGO",
			"HD", "COST", "NKE", "SBUX", "DIS", "V", "MA", "UNH", "ABBV", "LLY",
		},
		Growth: []string{
			"UBER", "LYFT", "AFRM", "ZS", "SNOW", "PLTR", "RIVN", "LCID", "RBLX", "HOOD",
		},
	}
}
