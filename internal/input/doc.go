// Package input validates raw user input (a command word plus string
// arguments) and turns it into todo commands.
//
// Command words:
//
//	add <todo>              add a new item, not done
//	clear                   remove every item
//	edit <todo> <new text>  rename an item
//	ls                      list every item
//	lss <status>            list items with the given status
//	rm <todo>               remove an item
//	set <todo> <status>     set (or create) an item's status
//	debug <text...>         run a diagnostic ("encoding", "diff")
//
// Booleans accept the usual human answers, see ParseBool.
package input
