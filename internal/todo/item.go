package todo

import "fmt"

// Item is a named boolean-status record.
type Item struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// Checkbox renders the status the way list output shows it.
func (i Item) Checkbox() string {
	if i.Done {
		return "[X]"
	}
	return "[ ]"
}

func (i Item) String() string {
	return fmt.Sprintf("%s %q", i.Checkbox(), i.Name)
}

// StatusWord returns "complete" or "incomplete".
func StatusWord(done bool) string {
	if done {
		return "complete"
	}
	return "incomplete"
}
