package scene

import "errors"

// Catalog validation errors.
var (
	// ErrEmptyCatalog indicates a catalog with no scenes.
	ErrEmptyCatalog = errors.New("scene: catalog has no scenes")

	// ErrSceneIDs indicates scene ids that do not form the range 1..N in order.
	ErrSceneIDs = errors.New("scene: ids must be dense and ordered from 1")

	// ErrSceneDuration indicates a non-positive or non-finite duration.
	ErrSceneDuration = errors.New("scene: duration must be a positive number of seconds")
)
