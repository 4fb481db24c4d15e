package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one converted asset in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Asset    string `json:"asset"`
	Vertices int    `json:"vertices"`
}

// WriteManifest writes manifest.json listing all successfully converted
// assets.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Source:   r.Source,
			Asset:    r.Asset,
			Vertices: r.Vertices,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
