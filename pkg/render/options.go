package render

// RenderOptions carry per-request data renderers use without mutating the
// field.
type RenderOptions struct {
	// Locale selects translations when a Translator is configured.
	Locale string
	// Errors adds server-side messages to those produced by the field's own
	// validation. Duplicates and blanks are dropped.
	Errors []string
	// ThemeName and ThemeVariant override the renderer's default theme
	// selection for this call.
	ThemeName    string
	ThemeVariant string
	// SkipMessages renders only the control, without the message list.
	SkipMessages bool
}
