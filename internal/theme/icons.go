package theme

// Working-tree status icons.
var (
	IconClean = PassStyle.Render("●")
	IconDirty = WarnStyle.Render("◐")
)

// GitHub fetch-state icons.
var (
	IconFetching = MutedStyle.Render("…")
	IconFetchErr = FailStyle.Render("✗")
	IconGitHub   = AccentStyle.Render("●")
)

// Change-kind prefixes for the changed-files list.
var (
	PrefixModified = WarnStyle.Render("M")
	PrefixAdded    = PassStyle.Render("A")
	PrefixDeleted  = FailStyle.Render("D")
)
