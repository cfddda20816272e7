package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconCursor   = "\uf054" // chevron-right
	IconWindow   = "\uf2d2" // window
	IconPin      = "\uf08d" // thumb-tack
	IconHidden   = "\uf070" // eye-slash
	IconVersion  = "\uf02b" // tag
	IconGo       = "\ue627" // go gopher
)
