// ABOUTME: Static disease treatment table loaded once from JSON
// ABOUTME: Lookups fall back to the "default" entry, then to an empty treatment
package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
)

// DefaultTreatmentKey is the catch-all entry of a treatment table
const DefaultTreatmentKey = "default"

// FallbackTreatment is attached to image diagnoses whose class has no entry
var FallbackTreatment = models.Treatment{
	General:    "Consult with agricultural experts for specific treatment recommendations.",
	Prevention: "Maintain good crop hygiene and monitor regularly.",
}

// TreatmentTable maps disease labels to treatment guidance. It is read-only after construction.
type TreatmentTable struct {
	entries map[string]models.Treatment
}

// NewTreatmentTable builds a table from an in-memory mapping
func NewTreatmentTable(entries map[string]models.Treatment) *TreatmentTable {
	copied := make(map[string]models.Treatment, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &TreatmentTable{entries: copied}
}

// LoadTreatmentTable reads a JSON object of label → treatment.
// A missing file yields an empty table.
func LoadTreatmentTable(path string) (*TreatmentTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewTreatmentTable(nil), nil
		}
		return nil, goerr.Wrap(err, "failed to read treatment table", goerr.V("path", path))
	}

	entries := map[string]models.Treatment{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, goerr.Wrap(models.ErrValidation, "invalid treatment table",
			goerr.V("path", path),
			goerr.V("cause", err.Error()))
	}
	return &TreatmentTable{entries: entries}, nil
}

// Lookup returns the exact entry for label, else the default entry, else an empty treatment
func (t *TreatmentTable) Lookup(label string) models.Treatment {
	if t == nil {
		return models.Treatment{}
	}
	if tr, ok := t.entries[strings.TrimSpace(label)]; ok {
		return tr
	}
	return t.entries[DefaultTreatmentKey]
}

// ForPrediction returns the exact entry for an image-predicted class, else FallbackTreatment
func (t *TreatmentTable) ForPrediction(class string) models.Treatment {
	if t != nil {
		if tr, ok := t.entries[class]; ok {
			return tr
		}
	}
	return FallbackTreatment
}

// Labels returns every label in the table, sorted
func (t *TreatmentTable) Labels() []string {
	if t == nil {
		return nil
	}
	labels := make([]string, 0, len(t.entries))
	for k := range t.entries {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// Len returns the number of entries
func (t *TreatmentTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
