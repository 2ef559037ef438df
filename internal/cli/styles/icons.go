package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c"
	IconX       = "\uf00d"
	IconWarning = "\uf071"
	IconInfo    = "\uf05a"
	IconConfig  = "\ue615"
	IconCursor  = "\uf054" // chevron-right

	IconOutput    = "\uf108" // desktop
	IconWorkspace = "\uf2d2" // window
	IconContainer = "\uf0db" // columns
	IconView      = "\uf2d0" // window-maximize
)
