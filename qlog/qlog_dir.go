package qlog

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fluidsim/fluidsim/internal/utils"
	"github.com/fluidsim/fluidsim/logging"
)

// QlogDir contains the value of the QLOGDIR environment variable.
// If it is the empty string ("") no qlog output is written.
var QlogDir string

func init() {
	QlogDir = os.Getenv("QLOGDIR")
	if QlogDir != "" {
		if _, err := os.Stat(QlogDir); os.IsNotExist(err) {
			if err := os.MkdirAll(QlogDir, 0o755); err != nil {
				log.Fatalf("failed to create qlog dir %s: %v", QlogDir, err)
			}
		}
	}
}

// DefaultTracer creates a qlog file in the directory specified by the QLOGDIR
// environment variable. File names are <label>.sqlog.
// It returns nil if QLOGDIR is not set.
func DefaultTracer(label string) logging.Tracer {
	if QlogDir == "" {
		return nil
	}
	path := fmt.Sprintf("%s/%s.sqlog", strings.TrimRight(QlogDir, "/"), label)
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Failed to create qlog file %s: %s", path, err.Error())
		return nil
	}
	return NewTracer(utils.NewBufferedWriteCloser(bufio.NewWriter(f), f))
}
