package catalog

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shelfsync/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a reference catalog seed file
type catalogFile struct {
	Candidates []domain.CandidateRecord `yaml:"candidates"`
}

// Load reads a YAML catalog file into candidate records. Entries with
// neither a code nor a name are dropped with a warning; they can never be
// matched. Returns ErrCatalogEmpty when nothing usable remains.
func Load(path string) ([]domain.CandidateRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	candidates := make([]domain.CandidateRecord, 0, len(file.Candidates))
	for i, candidate := range file.Candidates {
		if strings.TrimSpace(candidate.Code) == "" && strings.TrimSpace(candidate.Name) == "" {
			log.Printf("[CATALOG] skipping entry %d: no code and no name", i)
			continue
		}
		if candidate.ID == "" {
			candidate.ID = fmt.Sprintf("cat-%d", i)
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	log.Printf("[CATALOG] loaded %d candidates from %s", len(candidates), path)
	return candidates, nil
}
