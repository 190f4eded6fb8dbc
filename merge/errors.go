// errors.go - Fehler-Definitionen der Merge-Engine
package merge

import "errors"

var (
	// ErrInvalidConfig - Ungueltige Merge-Konfiguration (Density, Sign-Methode, Gewichte)
	ErrInvalidConfig = errors.New("invalid merge configuration")

	// ErrUnknownMethod - Unbekannte Kombinationsmethode
	ErrUnknownMethod = errors.New("unknown combination method")

	// ErrShapeMismatch - Adapter-Tensoren desselben Slots haben unterschiedliche Shapes
	ErrShapeMismatch = errors.New("adapter tensor shapes do not match")

	// ErrEmptyStack - Kein Adapter-Tensor uebergeben
	ErrEmptyStack = errors.New("no adapter tensors supplied")
)
