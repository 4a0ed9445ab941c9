package api

import "time"

// Viewer is the local context timestamps are shaped for.
type Viewer struct {
	Location *time.Location
	Now      func() time.Time
}

func LocalViewer() Viewer {
	return Viewer{Location: time.Local, Now: time.Now}
}

func (v Viewer) loc() *time.Location {
	if v.Location == nil {
		return time.Local
	}
	return v.Location
}

func (v Viewer) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}
