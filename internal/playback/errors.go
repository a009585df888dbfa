package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSceneID indicates a scene id outside [1, N].
	ErrInvalidSceneID = errors.New("playback: invalid scene id")

	// ErrEmptySceneCatalog indicates a controller built without scenes.
	ErrEmptySceneCatalog = errors.New("playback: empty scene catalog")
)

// InvalidSceneError carries the rejected id and the valid range.
type InvalidSceneError struct {
	ID     int
	Scenes int
}

func (e *InvalidSceneError) Error() string {
	return fmt.Sprintf("playback: invalid scene id %d (want 1..%d)", e.ID, e.Scenes)
}

func (e *InvalidSceneError) Unwrap() error {
	return ErrInvalidSceneID
}
