package thin

// noCopy is embedded into types whose address is handed out and that
// therefore must not be copied. It makes "go vet" flag the copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
