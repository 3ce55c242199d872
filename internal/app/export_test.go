package app

// SetGetwd replaces the working directory lookup used to default the source directory.
func (a *App) SetGetwd(getwd func() (string, error)) {
	a.getwd = getwd
}
