package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "\uf0ac" // browser/web
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconTrash   = "\uf1f8" // trash
	IconConfig  = "\ue615" // config

	IconCheckboxEmpty   = "\uf096" // unchecked
	IconCheckboxChecked = "\uf046" // checked

	IconCursor = "\uf054" // chevron-right

	IconTree     = "\uf1bb" // tree
	IconClock    = "\uf017" // clock
	IconExpand   = "\uf0da" // caret-right
	IconCollapse = "\uf0d7" // caret-down
	IconLeaf     = "\uf111" // circle
	IconPlay     = "\uf04b" // tracking on
	IconPause    = "\uf04c" // tracking off
)

// Tree guides used when printing the forest.
const (
	TreeBranch = "├── "
	TreeLast   = "└── "
	TreePipe   = "│   "
	TreeSpace  = "    "
)
