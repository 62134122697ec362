// Package clean implements the post-scrape passes that repair venue event
// files before aggregation: moving misplaced clock times out of date fields,
// deduplicating recurring events, and fixing venue display names.
package clean

import (
	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/logger"
	"github.com/afranz/boulder-events/internal/storage"
)

// Result summarizes one file in a pass.
type Result struct {
	File    string
	Count   int
	Skipped bool
	Err     error
}

// runPass loads each venue file, applies the pass, and rewrites the file.
// Missing files are skipped with a warning; a file that fails to load or
// save never stops the pass.
func runPass(store *storage.Storage, pass string, files []string, fn func([]*event.Event) ([]*event.Event, int)) []Result {
	results := make([]Result, 0, len(files))

	for _, file := range files {
		if !store.Exists(file) {
			logger.Warn("File not found", logger.Fields{
				"pass": pass,
				"file": file,
			})
			results = append(results, Result{File: file, Skipped: true})
			continue
		}

		events, err := store.LoadEvents(file)
		if err != nil {
			logger.Error("Skipping file", logger.Fields{
				"pass": pass,
				"file": file,
			}, err)
			results = append(results, Result{File: file, Err: err})
			continue
		}
		if len(events) == 0 {
			logger.Info("No events in file", logger.Fields{
				"pass": pass,
				"file": file,
			})
			results = append(results, Result{File: file})
			continue
		}

		cleaned, count := fn(events)
		if err := store.SaveEvents(file, cleaned); err != nil {
			logger.Error("Saving file failed", logger.Fields{
				"pass": pass,
				"file": file,
			}, err)
			results = append(results, Result{File: file, Err: err})
			continue
		}

		logger.Info("Processed file", logger.Fields{
			"pass":  pass,
			"file":  file,
			"count": count,
		})
		logger.AddCounter(pass+".events_changed", int64(count))
		results = append(results, Result{File: file, Count: count})
	}

	return results
}
