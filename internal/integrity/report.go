package integrity

import (
	"sort"
	"sync"
)

// Kind classifies a finding
type Kind string

const (
	KindMissingReference Kind = "missing_reference"
	KindRowCountMismatch Kind = "row_count_mismatch"
	KindDuplicateID      Kind = "duplicate_id"
	KindInvalidRow       Kind = "invalid_row"
	KindSequenceBehind   Kind = "sequence_behind"
	KindPolicyViolation  Kind = "policy_violation"
)

// Finding is one integrity problem
type Finding struct {
	Kind    Kind   `json:"kind"`
	Table   string `json:"table"`
	Column  string `json:"column,omitempty"`
	RowID   string `json:"row_id,omitempty"`
	Message string `json:"message"`
}

// TableSummary is the per-table view of a check
type TableSummary struct {
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	Declared int    `json:"declared"`
	MaxID    int    `json:"max_id,omitempty"`
	NextID   int    `json:"next_id,omitempty"`
}

// Report collects findings. It is safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	findings []Finding
	tables   []TableSummary
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) Add(f Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findings = append(r.findings, f)
}

func (r *Report) AddTable(s TableSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = append(r.tables, s)
}

// OK reports whether no finding was recorded
func (r *Report) OK() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.findings) == 0
}

// Findings returns the findings sorted by table, kind and row
func (r *Report) Findings() []Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].RowID < out[j].RowID
	})
	return out
}

// Tables returns the table summaries sorted by name
func (r *Report) Tables() []TableSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TableSummary, len(r.tables))
	copy(out, r.tables)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByKind groups the findings
func (r *Report) ByKind() map[Kind][]Finding {
	grouped := make(map[Kind][]Finding)
	for _, f := range r.Findings() {
		grouped[f.Kind] = append(grouped[f.Kind], f)
	}
	return grouped
}
