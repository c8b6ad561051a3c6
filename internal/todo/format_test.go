package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatList(t *testing.T) {
	assert.Equal(t, emptyListMessage, FormatList(nil))

	got := FormatList([]Item{{Name: "buy milk"}, {Name: "walk dog", Done: true}})
	assert.Equal(t, "All Todos\n--- -----\n[ ] \"buy milk\"\n[X] \"walk dog\"", got)
}

func TestFormatFiltered(t *testing.T) {
	assert.Equal(t, "There are no completed todos in the database.", FormatFiltered(true, nil))
	assert.Equal(t, "There are no incomplete todos in the database.", FormatFiltered(false, nil))

	got := FormatFiltered(true, []Item{{Name: "walk dog", Done: true}})
	assert.Equal(t, "Completed Todos\n--------- -----\n\t* \"walk dog\"", got)
}

func TestDescribe(t *testing.T) {
	removed := Item{Name: "a"}

	tests := []struct {
		name string
		cmd  Command
		res  Result
		want string
	}{
		{"add", Add{Name: "a"}, Result{Changed: true}, `Added "a".`},
		{"clear", Clear{}, Result{Changed: true}, "Todos cleared."},
		{"clear empty", Clear{}, Result{}, "Nothing to clear."},
		{"edit", Edit{Existing: "a", NewName: "b"}, Result{Changed: true}, `Renamed "a" to "b".`},
		{"remove", Remove{Name: "a"}, Result{Removed: &removed, Changed: true}, `Removed "a".`},
		{"set", SetStatus{Name: "a", Status: true}, Result{Changed: true}, `Marked "a" as complete.`},
		{"set unchanged", SetStatus{Name: "a"}, Result{}, `"a" is already incomplete.`},
		{"debug", Debug{Text: "diff"}, Result{Text: "report\n"}, "report"},
		{"list empty", List{}, Result{}, emptyListMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.cmd, tt.res))
		})
	}
}
