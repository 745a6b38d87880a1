package cli

// The App is the session.Navigator: "pages" are gateway paths the user has
// opened with the open command.

func (a *App) CurrentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

// Redirect prints notice and moves the user to path. The watchdog calls it
// from its own goroutine.
func (a *App) Redirect(path, notice string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if notice != "" {
		_, _ = a.output().Write([]byte("\n" + notice + "\n"))
	}
	a.path = path
}

func (a *App) setPath(path string) {
	a.mu.Lock()
	a.path = path
	a.mu.Unlock()
}
