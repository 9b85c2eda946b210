// Package cli implements the interactive cellar shell.
//
// The shell reads one command per line and prompts for whatever the
// command needs. Commands:
//
//	help                 show available commands
//	add                  add a wine (optionally with a label photo)
//	recognize            read a label photo and add the recognised wine
//	edit                 edit a wine, optionally replacing its photo
//	(l)ist [all] [k=v]   list wines, newest first; "all" includes archived,
//	                     color=, style= and sweet=Dry,Sweet narrow the list
//	search <text>        filter by name, producer, region or varietal
//	show                 show one wine
//	archive              archive or unarchive a wine
//	delete               delete a wine and its photo
//	pair                 ask for a pairing from the active inventory
//	settings             API key and model
//	exit | quit          leave the program
package cli
