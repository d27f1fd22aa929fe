package integrations

import "github.com/kerbaras/holocron/pkg/data"

// Exporter writes a loaded record to a file and returns its path.
type Exporter interface {
	Export(record data.Record) (string, error)
}
