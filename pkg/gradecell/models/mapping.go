package models

import "strconv"

// HeaderCellRef is a header cell that carries an activity label.
type HeaderCellRef struct {
	// Column is the column letters (e.g. "D").
	Column string
	// ColumnIndex is the column index (1-based).
	ColumnIndex int
	// Row is the activity row the label was read from.
	Row int
}

// String renders the reference as a cell name such as "D9".
func (h HeaderCellRef) String() string {
	return h.Column + strconv.Itoa(h.Row)
}

// MarshalText lets the reference appear as "D9" in JSON output.
func (h HeaderCellRef) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Activity is one activity label and every header cell where it appears,
// in ascending column order. Position i is term i.
type Activity struct {
	// Label is the label as written in the first header cell that carried it.
	Label string `json:"label"`
	// Cells are the header cells carrying the label, one per term.
	Cells []HeaderCellRef `json:"cells"`
}

// ActivityMapping maps activity labels to their header cells.
// Lookups go through a normalized key; display uses Activity.Label.
type ActivityMapping struct {
	// Sheet is the sheet the mapping was built from.
	Sheet string `json:"sheet"`
	// Activities lists activities in order of first appearance.
	Activities []Activity `json:"activities"`

	index map[string]int
}

// NewActivityMapping returns an empty mapping for the given sheet.
func NewActivityMapping(sheet string) *ActivityMapping {
	return &ActivityMapping{Sheet: sheet, index: make(map[string]int)}
}

// Add appends ref to the activity identified by key, creating it with label
// when the key is new.
func (m *ActivityMapping) Add(key, label string, ref HeaderCellRef) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	i, ok := m.index[key]
	if !ok {
		m.Activities = append(m.Activities, Activity{Label: label})
		i = len(m.Activities) - 1
		m.index[key] = i
	}
	m.Activities[i].Cells = append(m.Activities[i].Cells, ref)
}

// Lookup returns the activity stored under key.
func (m *ActivityMapping) Lookup(key string) (Activity, bool) {
	i, ok := m.index[key]
	if !ok {
		return Activity{}, false
	}
	return m.Activities[i], true
}

// Labels returns the display labels in order of first appearance.
func (m *ActivityMapping) Labels() []string {
	labels := make([]string, len(m.Activities))
	for i, a := range m.Activities {
		labels[i] = a.Label
	}
	return labels
}

// Len returns the number of distinct activities.
func (m *ActivityMapping) Len() int {
	return len(m.Activities)
}
