// config.go - Haupt-Konfigurationsfunktionen fuer lorakit
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (LORAKIT_DEBUG)
// - NumParallel: Gibt die Merge-Parallelitaet zurueck (LORAKIT_NUM_PARALLEL)
// - Var: Liest eine Environment-Variable
//
// Utility-Funktionen sind ausgelagert:
// - config_utils.go: Bool/Uint-Getter und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via LORAKIT_DEBUG
// Default: Info; LORAKIT_DEBUG=1 aktiviert Debug, groessere Zahlen mehr Detail
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("LORAKIT_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// NumParallel gibt die maximale Anzahl gleichzeitig gemergter
// Parameter-Slots zurueck
// Konfigurierbar via LORAKIT_NUM_PARALLEL
// Default: Anzahl der CPUs
var NumParallel = Uint("LORAKIT_NUM_PARALLEL", uint(runtime.NumCPU()))

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
