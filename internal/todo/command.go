package todo

// Kind tags a command payload.
type Kind string

// Command kinds.
const (
	KindAdd          Kind = "add"
	KindClear        Kind = "clear"
	KindEdit         Kind = "edit"
	KindList         Kind = "list"
	KindListFiltered Kind = "list_filtered"
	KindRemove       Kind = "remove"
	KindSetStatus    Kind = "set_status"
	KindDebug        Kind = "debug"
)

// AllKinds lists every command kind in presentation order.
func AllKinds() []Kind {
	return []Kind{
		KindAdd,
		KindClear,
		KindEdit,
		KindList,
		KindListFiltered,
		KindRemove,
		KindSetStatus,
		KindDebug,
	}
}

// Mutates reports whether commands of this kind can change the store.
func (k Kind) Mutates() bool {
	switch k {
	case KindAdd, KindClear, KindEdit, KindRemove, KindSetStatus:
		return true
	}
	return false
}

// Command is a validated user intent. The set of implementations is closed.
type Command interface {
	Kind() Kind
	isCommand()
}

// Add inserts a new item with status not-done.
type Add struct {
	Name string `json:"name"`
}

// Clear removes every item.
type Clear struct{}

// Edit renames an existing item.
type Edit struct {
	Existing string `json:"existing"`
	NewName  string `json:"new_name"`
}

// List returns every item.
type List struct{}

// ListFiltered returns the items with the given status.
type ListFiltered struct {
	Status bool `json:"status"`
}

// Remove deletes an item.
type Remove struct {
	Name string `json:"name"`
}

// SetStatus upserts the status of an item.
type SetStatus struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// Debug runs a diagnostic named by Text ("encoding", "diff").
type Debug struct {
	Text string `json:"text"`
}

func (Add) Kind() Kind          { return KindAdd }
func (Clear) Kind() Kind        { return KindClear }
func (Edit) Kind() Kind         { return KindEdit }
func (List) Kind() Kind         { return KindList }
func (ListFiltered) Kind() Kind { return KindListFiltered }
func (Remove) Kind() Kind       { return KindRemove }
func (SetStatus) Kind() Kind    { return KindSetStatus }
func (Debug) Kind() Kind        { return KindDebug }

func (Add) isCommand()          {}
func (Clear) isCommand()        {}
func (Edit) isCommand()         {}
func (List) isCommand()         {}
func (ListFiltered) isCommand() {}
func (Remove) isCommand()       {}
func (SetStatus) isCommand()    {}
func (Debug) isCommand()        {}

// Result is the outcome of a successfully applied command.
type Result struct {
	// Kind is the command that produced this result.
	Kind Kind `json:"kind"`

	// Items holds queried data for List and ListFiltered, ordered by name.
	Items []Item `json:"items,omitempty"`

	// Removed is the item deleted by Remove.
	Removed *Item `json:"removed,omitempty"`

	// Changed reports whether the store was modified.
	Changed bool `json:"changed"`

	// Text is optional human-readable output (debug reports).
	Text string `json:"text,omitempty"`
}
